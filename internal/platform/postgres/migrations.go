package postgres

import "embed"

// MigrationsFS embeds the SQL migrations so the server binary can apply
// them without a checkout of the repository.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir is the path of the migration files inside MigrationsFS.
const MigrationsDir = "migrations"
