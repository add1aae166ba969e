// Package postgres provides PostgreSQL-backed implementations of the
// persistence interfaces defined in the store package.
package postgres
