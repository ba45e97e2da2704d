// Package testdb provides helpers for tests that run against a real
// PostgreSQL database. Tests using it are built with the "integration" tag
// and skip when no database URL is configured.
package testdb
