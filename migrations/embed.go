// Package migrations embeds the schema so the binaries and tests carry it.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
