// Copyright (c) 2025 ProjectFlow
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages. Session checks use the kind to decide whether a failure
// means "not authenticated", "try again later" or "local storage is broken".
//
// The package supports wrapping underlying errors while maintaining error kind information,
// so callers can classify a failure with KindOf after any amount of fmt.Errorf wrapping.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Unknown is returned by KindOf for errors that carry no kind.
	Unknown Kind = "unknown"
	// MissingToken indicates no access token is stored.
	MissingToken Kind = "missing_token"
	// InvalidToken indicates the identity endpoint rejected the token (non-2xx).
	InvalidToken Kind = "invalid_token"
	// NetworkFailure indicates the request never produced an HTTP response.
	NetworkFailure Kind = "network_failure"
	// MalformedProfile indicates a 2xx identity response whose body could not be decoded.
	MalformedProfile Kind = "malformed_profile"
	// StorageFailure indicates the session store could not be read or written.
	StorageFailure Kind = "storage_failure"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the outermost *E in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
