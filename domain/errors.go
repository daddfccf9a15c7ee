// Package domain defines error types for the storefront.
package domain

import (
	"errors"
	"fmt"
)

// ProductNotFoundError is returned when a product with the given ID is not found
type ProductNotFoundError struct {
	ProductID int
}

// Error implements the error interface for ProductNotFoundError
func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%d", e.ProductID)
}

// Is allows proper error type checking with errors.Is()
func (e *ProductNotFoundError) Is(target error) bool {
	_, ok := target.(*ProductNotFoundError)
	return ok
}

// InvalidProductError is returned when product validation fails
type InvalidProductError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for InvalidProductError
func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidProductError) Is(target error) bool {
	_, ok := target.(*InvalidProductError)
	return ok
}

// InvalidAmountError is returned when a wallet operation receives a
// non-positive amount
type InvalidAmountError struct {
	Amount int64
	Reason string
}

// Error implements the error interface for InvalidAmountError
func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %d (%s)", e.Amount, e.Reason)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidAmountError) Is(target error) bool {
	_, ok := target.(*InvalidAmountError)
	return ok
}

// InsufficientFundsError is returned when a debit exceeds the wallet balance
type InsufficientFundsError struct {
	Requested int64
	Balance   int64
}

// Error implements the error interface for InsufficientFundsError
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: requested=%d, balance=%d", e.Requested, e.Balance)
}

// Is allows proper error type checking with errors.Is()
func (e *InsufficientFundsError) Is(target error) bool {
	_, ok := target.(*InsufficientFundsError)
	return ok
}

// InvalidCredentialsError is returned when login or registration input fails
// validation
type InvalidCredentialsError struct {
	Field  string
	Reason string
}

// Error implements the error interface for InvalidCredentialsError
func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials: field=%s, reason=%s", e.Field, e.Reason)
}

// Is allows proper error type checking with errors.Is()
func (e *InvalidCredentialsError) Is(target error) bool {
	_, ok := target.(*InvalidCredentialsError)
	return ok
}

// EmptyCartError is returned when checkout is attempted on an empty cart
type EmptyCartError struct{}

// Error implements the error interface for EmptyCartError
func (e *EmptyCartError) Error() string {
	return "cart is empty"
}

// Is allows proper error type checking with errors.Is()
func (e *EmptyCartError) Is(target error) bool {
	_, ok := target.(*EmptyCartError)
	return ok
}

// Helper functions for creating errors with context

// NewProductNotFoundError creates a new ProductNotFoundError
func NewProductNotFoundError(productID int) error {
	return &ProductNotFoundError{ProductID: productID}
}

// NewInvalidProductError creates a new InvalidProductError
func NewInvalidProductError(field, reason string, value interface{}) error {
	return &InvalidProductError{
		Field:  field,
		Reason: reason,
		Value:  value,
	}
}

// NewInvalidAmountError creates a new InvalidAmountError
func NewInvalidAmountError(amount int64, reason string) error {
	return &InvalidAmountError{Amount: amount, Reason: reason}
}

// NewInsufficientFundsError creates a new InsufficientFundsError
func NewInsufficientFundsError(requested, balance int64) error {
	return &InsufficientFundsError{Requested: requested, Balance: balance}
}

// NewInvalidCredentialsError creates a new InvalidCredentialsError
func NewInvalidCredentialsError(field, reason string) error {
	return &InvalidCredentialsError{Field: field, Reason: reason}
}

// NewEmptyCartError creates a new EmptyCartError
func NewEmptyCartError() error {
	return &EmptyCartError{}
}

// Type assertion helpers for use with errors.As()

// IsProductNotFoundError checks if an error is a ProductNotFoundError
func IsProductNotFoundError(err error) bool {
	var pnf *ProductNotFoundError
	return errors.As(err, &pnf)
}

// IsInvalidProductError checks if an error is an InvalidProductError
func IsInvalidProductError(err error) bool {
	var ipe *InvalidProductError
	return errors.As(err, &ipe)
}

// IsInvalidAmountError checks if an error is an InvalidAmountError
func IsInvalidAmountError(err error) bool {
	var iae *InvalidAmountError
	return errors.As(err, &iae)
}

// IsInsufficientFundsError checks if an error is an InsufficientFundsError
func IsInsufficientFundsError(err error) bool {
	var ife *InsufficientFundsError
	return errors.As(err, &ife)
}

// IsInvalidCredentialsError checks if an error is an InvalidCredentialsError
func IsInvalidCredentialsError(err error) bool {
	var ice *InvalidCredentialsError
	return errors.As(err, &ice)
}

// IsEmptyCartError checks if an error is an EmptyCartError
func IsEmptyCartError(err error) bool {
	var ece *EmptyCartError
	return errors.As(err, &ece)
}
