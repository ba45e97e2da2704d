// Package memory provides in-memory implementations of the store interfaces.
// They are used when the server runs with the "memory" database driver and by
// tests that need a working store without PostgreSQL. Data lives only as long
// as the process.
package memory
