// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver error strings themselves.
package repository

import "errors"

// ErrEmailExists is returned when an insert violates the unique
// constraint on users.email. Handlers should translate this into an
// HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
