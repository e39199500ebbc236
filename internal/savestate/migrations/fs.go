// Package migrations holds the embedded SQL migrations of the save-state store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
