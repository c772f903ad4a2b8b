// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrValidation indicates a missing or malformed input field.
var ErrValidation = errors.New("validation failed")

// ErrUnauthenticated indicates no principal could be resolved from the
// request's credential.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden indicates a resolved principal that the policy denies.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate indicates a uniqueness conflict (duplicate email,
// full business name, or menu item name).
var ErrDuplicate = errors.New("already exists")
