// Package errors provides shared error types for the FourMeme trader tools.
package errors

import (
	"fmt"
)

// NotFoundError indicates an entity had no data in Bitquery or on-chain.
type NotFoundError struct {
	Source     string // "bitquery", "chain"
	EntityType string // "token", "trades", "price"
	Identifier string // token address or query parameter
}

func (e *NotFoundError) Error() string {
	if e.EntityType != "" {
		return fmt.Sprintf("%s not found via %s: %s", e.EntityType, e.Source, e.Identifier)
	}
	return fmt.Sprintf("not found via %s: %s", e.Source, e.Identifier)
}

// NewNotFoundError creates a NotFoundError for a token lookup.
func NewNotFoundError(source, identifier string) *NotFoundError {
	return &NotFoundError{
		Source:     source,
		EntityType: "token",
		Identifier: identifier,
	}
}

// ValidationError indicates invalid tool input.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// WalletNotConfiguredError is returned by trading tools when no private key
// is available. The key value is never included in the message.
type WalletNotConfiguredError struct {
	Tool string
}

func (e *WalletNotConfiguredError) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("%s requires a wallet: set WALLET_PRIVATE_KEY", e.Tool)
	}
	return "wallet not configured: set WALLET_PRIVATE_KEY"
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// IsWalletNotConfigured returns true if the error is a WalletNotConfiguredError.
func IsWalletNotConfigured(err error) bool {
	_, ok := err.(*WalletNotConfiguredError)
	return ok
}
