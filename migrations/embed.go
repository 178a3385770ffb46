// Package migrations embeds the schema migration files so the compiled
// binary can bootstrap a fresh database without shipping extra files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
