// Package migrations embeds the SQL schema so the migrate command does not depend on the
// working directory.
package migrations

import "embed"

const PostgresDir = "postgres"

//go:embed postgres/*.sql
var Postgres embed.FS
