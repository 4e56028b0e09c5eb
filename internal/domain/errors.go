package domain

import "errors"

var (
	// ErrVaultNotFound is returned when a vault row does not exist and cannot be backfilled
	ErrVaultNotFound = errors.New("vault not found")

	// ErrInvalidAmount is returned when a decimal-string amount cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidEvent is returned when an event is missing required coordinate fields
	ErrInvalidEvent = errors.New("invalid event")
)
