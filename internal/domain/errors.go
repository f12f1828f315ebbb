// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrNoSongLoaded is returned when a playback operation requires a loaded song.
	ErrNoSongLoaded = errors.New("no song loaded")

	// ErrSongNotFound is returned when a requested song cannot be found.
	ErrSongNotFound = errors.New("song not found")

	// ErrPlaylistNotFound is returned when a requested playlist cannot be found.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrNoPreview is returned when a remote track carries no preview URL.
	ErrNoPreview = errors.New("remote track has no preview")

	// ErrEmptyName is returned when a playlist name is blank.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrEngineReleased is returned when an operation is attempted on a released engine.
	ErrEngineReleased = errors.New("playback engine released")

	// ErrInvalidPath is returned when a resource locator is empty or unusable.
	ErrInvalidPath = errors.New("invalid resource locator")
)

// EngineError represents an error from the playback engine.
// It wraps low-level media library errors with additional context.
type EngineError struct {
	Op      string // Operation that failed (e.g., "load", "play", "seek")
	Path    string // Resource locator (if applicable)
	Message string // Error message
	Err     error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("engine %s failed for %q: %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("engine %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError.
func NewEngineError(op, path, message string, err error) *EngineError {
	return &EngineError{Op: op, Path: path, Message: message, Err: err}
}

// StoreError represents an error from the persistent library store.
type StoreError struct {
	Op      string // Operation that failed (e.g., "save", "all", "delete")
	Entity  string // Entity kind ("song" or "playlist")
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s.%s failed: %s", e.Entity, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op, entity, message string, err error) *StoreError {
	return &StoreError{Op: op, Entity: entity, Message: message, Err: err}
}

// CatalogError represents an error from the remote catalog client.
type CatalogError struct {
	Op         string // Operation that failed ("search", "suggestions")
	StatusCode int    // HTTP status code, 0 when the request never completed
	Message    string // Error message
	Err        error  // Underlying error
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s failed: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("catalog %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError creates a new CatalogError.
func NewCatalogError(op string, statusCode int, message string, err error) *CatalogError {
	return &CatalogError{Op: op, StatusCode: statusCode, Message: message, Err: err}
}
