// Package migrations embeds the export journal schema into the binary.
package migrations

import (
	"embed"

	"github.com/nerrad567/solar-export/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
