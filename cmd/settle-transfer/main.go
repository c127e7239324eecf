// Command settle-transfer runs a single transfer to completion and prints
// each status change. Interrupting it records the transfer as cancelled.
//
// With -encrypt-key it instead encrypts the key in SETTLE_PRIVATE_KEY and
// prints the signer config block that loads it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/chainsafe/settle-rebalancer/pkg/app/api"
	"github.com/chainsafe/settle-rebalancer/pkg/config"
	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to configuration file")
		from       = flag.String("from", "", "Source chain id, e.g. ethereum-sepolia")
		to         = flag.String("to", "", "Destination chain id")
		amount     = flag.String("amount", "", "Amount in whole token units, e.g. 12.5")
		recipient  = flag.String("recipient", "", "Destination address")
		speed      = flag.String("speed", "", "fast or standard (defaults to bridge.default_speed)")
		walletRef  = flag.String("wallet-ref", "", "Wallet reference recorded on the transfer")
		resume     = flag.String("resume", "", "Resume the mint of a failed transfer id instead of starting one")
		encrypt    = flag.Bool("encrypt-key", false, "Encrypt the key in "+privateKeyEnv+" and print the signer config")
		masterEnv  = flag.String("master-key-env", "SETTLE_MASTER_KEY", "Environment variable holding the base64 master key")
	)
	flag.Parse()

	if *encrypt {
		if err := encryptKey(os.Stdout, *masterEnv, os.Getenv); err != nil {
			fmt.Fprintf(os.Stderr, "encrypt key failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*configPath, *resume, *amount, &transfer.Request{
		SourceChain:          *from,
		DestinationChain:     *to,
		DestinationAddress:   *recipient,
		SourceWalletRef:      *walletRef,
		DestinationWalletRef: *walletRef,
		Speed:                transfer.Speed(*speed),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "transfer failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, resumeID, amount string, req *transfer.Request) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if resumeID == "" {
		units, err := transfer.ParseAmount(amount, transfer.TokenDecimals)
		if err != nil {
			return err
		}
		req.Amount = units
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := api.Wire(ctx, cfg, logger, func(rec *transfer.Record) {
		fmt.Printf("%s  %-12s %s\n", rec.UpdatedAt.Format("15:04:05"), rec.Status, rec.ID)
	})
	if err != nil {
		return err
	}
	defer components.Close()

	logger.Info("Signer loaded", zap.String("address", components.Signer.Hex()))

	var rec *transfer.Record
	if resumeID != "" {
		rec, err = components.Service.ResumeMint(ctx, resumeID)
	} else {
		rec, err = components.Service.Execute(ctx, req)
	}
	if rec != nil {
		out, _ := json.MarshalIndent(rec, "", "  ")
		fmt.Println(string(out))
	}
	return err
}
