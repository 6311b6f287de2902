// Package migrations embeds the schema applied by the schema initializer,
// one directory per SQL dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
