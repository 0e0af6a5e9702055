// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// matching on error strings: duplicate registrations, missing rows and
// out-of-range month filters each map to their own HTTP status.
package repository

import "errors"

// ErrEmailExists is returned when a user insert collides with the unique
// email index. Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup or delete matches no row.
// Handlers translate this into an HTTP 404 response.
var ErrUserNotFound = errors.New("user not found")

// ErrPesertaNotFound is returned when a participant lookup or delete
// matches no row. Handlers translate this into an HTTP 404 response.
var ErrPesertaNotFound = errors.New("peserta not found")

// ErrInvalidMonth is returned by month-scoped operations when the month
// number falls outside 1..12. The check runs before any query is issued.
var ErrInvalidMonth = errors.New("invalid month")
