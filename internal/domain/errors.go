package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// Email verification flow.
	ErrInvalidCode = errors.New("invalid verification code")
	ErrExpiredCode = errors.New("expired verification code")

	// Voting flow.
	ErrVotingClosed = errors.New("voting is closed")

	// Registration guard.
	ErrLimitReached = errors.New("account limit reached")
)
