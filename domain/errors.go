package domain

import "errors"

var (
	// ErrNotFound indicates a referenced question or reply no longer exists.
	ErrNotFound = errors.New("not found")

	// ErrEmptyReply indicates the user submitted an empty reply.
	ErrEmptyReply = errors.New("reply cannot be empty")

	// ErrEmptyTitle indicates a question was submitted without a title.
	ErrEmptyTitle = errors.New("question title cannot be empty")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
