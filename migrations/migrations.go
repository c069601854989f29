// Package migrations embeds the Postgres schema so the migrator binary is self-contained.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
