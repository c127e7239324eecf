package migrations

import (
	"context"
	"testing"

	"github.com/uptrace/bun/migrate"

	"github.com/chainsafe/settle-rebalancer/pkg/migrations/settledb"
	mghelper "github.com/chainsafe/settle-rebalancer/pkg/pgutil"
)

func TestSettleDBMigrations_Apply(t *testing.T) {
	db, cleanup := mghelper.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, settledb.Migrations)

	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if group.IsZero() {
		t.Error("Expected migrations to run, but none were applied")
	}

	for _, table := range []string{"transfers", "bun_migrations"} {
		mghelper.AssertTableExists(t, db, table)
	}
	for _, column := range []string{"status", "source_wallet_ref", "destination_wallet_ref", "burn_tx_id", "created_at"} {
		mghelper.AssertIndexExists(t, db, "idx_transfers_"+column)
	}
}

func TestSettleDBMigrations_Rollback(t *testing.T) {
	db, cleanup := mghelper.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, settledb.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}

	group, err := migrator.Rollback(ctx)
	if err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}
	if group.IsZero() {
		t.Error("Expected rollback to revert a migration group")
	}
	mghelper.AssertTableNotExists(t, db, "transfers")

	// Re-applying after a rollback must succeed
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() failed: %v", err)
	}
	mghelper.AssertTableExists(t, db, "transfers")
}
