// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces (repositories) defined in the internal/store package.
// It handles query execution, mapping of PostgreSQL errors to store errors,
// and the embedded goose schema migrations.
package postgres
