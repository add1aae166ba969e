// Package store defines the persistence interfaces for the bookstore's
// entities along with the sentinel errors shared by every implementation.
// Concrete backends live under internal/platform.
package store
