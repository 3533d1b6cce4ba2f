// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidPassword is returned when a supplied password does not match the stored hash.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrWeakPassword is returned when a new password does not meet the length policy.
	ErrWeakPassword = errors.New("password does not meet requirements")

	// ErrMissingPasswords is returned when update-password is called without both passwords.
	ErrMissingPasswords = errors.New("old and new passwords are required")

	// ErrInvalidUser is returned when name or email is blank after trimming.
	ErrInvalidUser = errors.New("name and email are required")
)
