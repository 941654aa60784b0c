// Package migrations — SQL-миграции, встроенные в бинарник.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
