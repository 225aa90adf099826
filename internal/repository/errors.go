// Package repository contains the raw SQL data access layer. This file
// defines sentinel errors reused across multiple repositories so that
// higher layers can distinguish failure scenarios with errors.Is.
package repository

import "errors"

// ErrUsernameExists is returned when an insert would violate the unique
// username constraint.
var ErrUsernameExists = errors.New("username already exists")

// ErrConflict is returned when a delete cannot be performed because of
// dependent records, such as removing a user that still has bookings.
var ErrConflict = errors.New("conflict")
