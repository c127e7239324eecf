// Package chain holds the static registry of chains the transfer orchestrator
// can burn from and mint to.
package chain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/settle-rebalancer/pkg/config"
)

// ErrUnknownChain is wrapped by UnknownChainError.
var ErrUnknownChain = errors.New("unknown chain")

// UnknownChainError is returned when a chain identifier has no registry entry.
type UnknownChainError struct {
	ID string
}

func (e *UnknownChainError) Error() string {
	return fmt.Sprintf("unknown chain %q", e.ID)
}

func (e *UnknownChainError) Unwrap() error { return ErrUnknownChain }

// Config describes one chain. Immutable once the registry is built.
type Config struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	ChainID              uint64         `json:"chainId"`
	DomainID             uint32         `json:"domainId"`
	TokenAddress         common.Address `json:"tokenAddress"`
	BurnMessengerAddress common.Address `json:"burnMessengerAddress"`
	MintReceiverAddress  common.Address `json:"mintReceiverAddress"`
	RPCURL               string         `json:"-"`
	NativeSymbol         string         `json:"nativeSymbol"`
}

// Registry is a read-only lookup of chain configurations.
type Registry struct {
	chains map[string]Config
}

// NewRegistry builds a registry from the given chains. Later entries with the
// same ID replace earlier ones.
func NewRegistry(chains ...Config) (*Registry, error) {
	r := &Registry{chains: make(map[string]Config, len(chains))}
	for _, c := range chains {
		if err := c.validate(); err != nil {
			return nil, err
		}
		r.chains[c.ID] = c
	}
	return r, nil
}

// NewRegistryFromConfig builds the registry from application configuration,
// layering configured chains over the testnet presets when enabled.
func NewRegistryFromConfig(cfg config.RegistryConfig) (*Registry, error) {
	base := map[string]Config{}
	if cfg.Presets {
		for _, p := range TestnetPresets() {
			base[p.ID] = p
		}
	}

	ids := make([]string, 0, len(cfg.Chains))
	for id := range cfg.Chains {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		c := base[id]
		c.ID = id
		merge(&c, cfg.Chains[id])
		base[id] = c
	}

	all := make([]Config, 0, len(base))
	for _, c := range base {
		all = append(all, c)
	}
	return NewRegistry(all...)
}

func merge(dst *Config, o config.ChainConfig) {
	if o.Name != "" {
		dst.Name = o.Name
	}
	if o.ChainID != 0 {
		dst.ChainID = o.ChainID
	}
	if o.DomainID != nil {
		dst.DomainID = *o.DomainID
	}
	if o.TokenAddress != "" {
		dst.TokenAddress = common.HexToAddress(o.TokenAddress)
	}
	if o.BurnMessengerAddress != "" {
		dst.BurnMessengerAddress = common.HexToAddress(o.BurnMessengerAddress)
	}
	if o.MintReceiverAddress != "" {
		dst.MintReceiverAddress = common.HexToAddress(o.MintReceiverAddress)
	}
	if o.RPCURL != "" {
		dst.RPCURL = o.RPCURL
	}
	if o.NativeSymbol != "" {
		dst.NativeSymbol = o.NativeSymbol
	}
}

func (c Config) validate() error {
	if c.ID == "" {
		return fmt.Errorf("chain id is required")
	}
	if c.ChainID == 0 {
		return fmt.Errorf("chain %s: network chain_id is required", c.ID)
	}
	zero := common.Address{}
	if c.TokenAddress == zero {
		return fmt.Errorf("chain %s: token_address is required", c.ID)
	}
	if c.BurnMessengerAddress == zero {
		return fmt.Errorf("chain %s: burn_messenger_address is required", c.ID)
	}
	if c.MintReceiverAddress == zero {
		return fmt.Errorf("chain %s: mint_receiver_address is required", c.ID)
	}
	return nil
}

// Get returns the configuration for id.
func (r *Registry) Get(id string) (Config, error) {
	c, ok := r.chains[id]
	if !ok {
		return Config{}, &UnknownChainError{ID: id}
	}
	return c, nil
}

// List returns all chains sorted by ID.
func (r *Registry) List() []Config {
	out := make([]Config, 0, len(r.chains))
	for _, c := range r.chains {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
