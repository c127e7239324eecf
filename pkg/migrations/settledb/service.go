// Package settledb holds all the migrations for the settle database
package settledb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the settle database
var Migrations = migrate.NewMigrations()
