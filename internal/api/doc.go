// Package api provides the HTTP handlers for the bookstore API: signup and
// login, the book catalog with owner-scoped mutations, and the legacy
// product catalog. Handlers translate between HTTP payloads and the store
// interfaces and hold no business logic beyond that translation.
package api
