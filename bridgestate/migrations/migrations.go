package migrations

import (
	"database/sql"
	_ "embed"

	"github.com/0xPolygon/msgbridge/db"
	"github.com/0xPolygon/msgbridge/db/types"
	"github.com/0xPolygon/msgbridge/log"
)

//go:embed bridgestate0001.sql
var mig001 string

func RunMigrations(logger *log.Logger, database *sql.DB) error {
	migrations := []types.Migration{
		{
			ID:  "bridgestate0001",
			SQL: mig001,
		},
	}

	return db.RunMigrationsDB(logger, database, migrations)
}
