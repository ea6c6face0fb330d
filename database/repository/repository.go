// Package repository holds the errors shared by every store implementation.
package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("record already exists")
	// ErrConflict is returned when a concurrent writer kept winning or a
	// state transition no longer applies.
	ErrConflict = errors.New("concurrent modification")
)
