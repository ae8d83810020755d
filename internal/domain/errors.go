package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy for the document toolkit. Validation errors are
// resolved entirely client-side and never reach the network layer; the
// remaining kinds normalize server and transport failures so the
// orchestrator can decide how to surface them.
type (
	// ValidationError indicates input rejected before submission
	// (unsupported file type, oversized file, malformed catalog
	// number, invalid date ordering, missing required field).
	ValidationError struct {
		Message string
	}

	// ConflictError indicates a server-reported conflict (duplicate
	// name, folder not empty on a non-recursive delete). The operation
	// aborted with no partial effect.
	ConflictError struct {
		Message string
	}

	// TransportError indicates a network failure, timeout or 5xx. For
	// batch operations it is recorded per item and does not abort
	// sibling items. Retryable by the user, never automatically.
	TransportError struct {
		Message string
		Err     error
	}

	// AuthorizationError indicates a 401 or 403. Never retried
	// automatically; SignIn distinguishes "please sign in again"
	// (401) from "you lack permission" (403).
	AuthorizationError struct {
		Message string
		SignIn  bool
	}

	// NotFoundError indicates the target no longer exists (404), e.g.
	// editing a just-deleted document. Callers should refresh their
	// cached state to reconcile.
	NotFoundError struct {
		Message string
	}
)

func (e *ValidationError) Error() string    { return e.Message }
func (e *ConflictError) Error() string      { return e.Message }
func (e *AuthorizationError) Error() string { return e.Message }
func (e *NotFoundError) Error() string      { return e.Message }

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error { return e.Err }

// Sentinel errors for use with errors.Is().
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrTransport    = errors.New("transport failure")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	// ErrCyclicMove is returned when a folder move would make a folder
	// a descendant of itself. Checked client-side before the server is
	// called; a successful cyclic move would corrupt the tree.
	ErrCyclicMove = errors.New("cannot move a folder into itself or its descendants")

	// ErrFolderNotEmpty is returned by a non-recursive delete of a
	// folder that still has children or documents.
	ErrFolderNotEmpty = errors.New("folder is not empty")
)

// Is implementations so typed errors match their sentinels.
func (e *ValidationError) Is(target error) bool    { return target == ErrValidation }
func (e *ConflictError) Is(target error) bool      { return target == ErrConflict }
func (e *TransportError) Is(target error) bool     { return target == ErrTransport }
func (e *AuthorizationError) Is(target error) bool { return target == ErrUnauthorized }
func (e *NotFoundError) Is(target error) bool      { return target == ErrNotFound }
