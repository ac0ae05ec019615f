// Package migrations embeds SQL migration files into the binary, so the
// credential cache schema can be created without shipping loose SQL files.
package migrations

import (
	"embed"

	"github.com/qszone/naviguard/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
