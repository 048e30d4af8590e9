// Package migrations embeds the versioned SQL schema of the ledger.
package migrations

import "embed"

// FS holds every up and down migration in this directory.
//
//go:embed *.sql
var FS embed.FS
