// Package migrations embeds the goose SQL migrations. Each dialect has its
// own directory named after dbx.Dialect.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
