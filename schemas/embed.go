// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the schema of the SQL cache backend.
//
//go:embed migrations/*.sql
var Migrations embed.FS
