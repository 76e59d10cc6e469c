// Package repository implements the command-side persistence ports with
// squirrel-built SQL over pgx. State transitions are guarded UPDATEs: the
// WHERE clause carries the expected prior status and zero affected rows
// means a concurrent writer won.
package repository

import "github.com/Masterminds/squirrel"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
