// Package migrations embeds the schema for every supported database engine.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS

const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
