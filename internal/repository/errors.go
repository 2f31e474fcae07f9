// Package repository is the durable MySQL store behind the in-memory
// reservation engine.  At boot the whole catalog is loaded to rebuild
// the engine; afterwards handlers write through on mutations.  The
// sentinel errors below let handlers distinguish failure scenarios
// without inspecting driver-specific error strings.
package repository

import "errors"

// ErrUserExists is returned when a username or email collides with an
// existing account.  Handlers translate it into an HTTP 409.
var ErrUserExists = errors.New("username or email already exists")
