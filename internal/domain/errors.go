package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrTitleTooShort is returned when a task title is shorter than
	// TitleMinLength after trimming surrounding whitespace.
	ErrTitleTooShort = errors.New("title must be at least 3 characters long")

	// ErrEmptyOwnerID is returned when a task has no owner.
	ErrEmptyOwnerID = errors.New("owner ID cannot be empty")

	// ErrEmptyUserID is returned when a user ID is missing.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrUsernameTooShort is returned when a username is shorter than
	// UsernameMinLength after trimming.
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")

	// ErrUsernameTooLong is returned when a username exceeds UsernameMaxLength.
	ErrUsernameTooLong = errors.New("username must be at most 30 characters long")

	// ErrPasswordTooShort is returned when a password is shorter than 6 characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")

	// ErrPasswordTooLong is returned when a password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters long")

	// ErrEmptyPassword is returned when no credential material is present at all.
	ErrEmptyPassword = errors.New("password cannot be empty")
)
