package main

import (
	"context"
	"flag"
	"log"

	"github.com/uptrace/bun/migrate"

	"github.com/chainsafe/settle-rebalancer/pkg/config"
	"github.com/chainsafe/settle-rebalancer/pkg/migrations/settledb"
	"github.com/chainsafe/settle-rebalancer/pkg/pgutil"
	mghelper "github.com/chainsafe/settle-rebalancer/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("migrations need the postgres driver, config uses %q", cfg.Database.Driver)
	}

	ctx := context.Background()

	db, err := pgutil.ConnectDB(ctx, &cfg.Database, nil)
	if err != nil {
		log.Fatalf("error connecting to database: %s", err.Error())
	}
	defer db.Close()

	log.Printf("Running migrations for transfer database (%s)...\n", cfg.Database.Database)

	migrator := migrate.NewMigrator(db, settledb.Migrations)
	if err := mghelper.RunMigrations(ctx, migrator, flag.Args()...); err != nil {
		mghelper.Exitf("%s", err)
	}
}
