// Package domain holds the shared sentinel errors and key conventions.
package domain

import "errors"

var (
	// ErrNoteNotFound signals a missing note.
	ErrNoteNotFound = errors.New("note not found")
	// ErrInvalidInput signals an invalid note payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidQuery signals an empty or whitespace-only search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrSemanticUnavailable signals a similarity scorer failure.
	// Search degrades to lexical-only tagging; it never propagates as a search failure.
	ErrSemanticUnavailable = errors.New("semantic scorer unavailable")
)
