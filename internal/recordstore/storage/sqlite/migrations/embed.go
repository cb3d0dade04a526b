package migrations

import "embed"

// FS contains embedded SQLite migrations for record store storage.
//
//go:embed *.sql
var FS embed.FS
