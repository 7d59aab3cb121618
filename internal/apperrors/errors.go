// Package apperrors defines the error taxonomy shared by the service
// and handler layers: a collapsed not-found sentinel, request
// validation errors, and typed business-rule errors that abort the
// order transactions. Anything else is treated as an infrastructure
// error and surfaced generically.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both "does not exist" and "exists but is not
// yours" for non-elevated callers, so responses never leak whether a
// resource exists.
var ErrNotFound = errors.New("not found")

// Promotion window errors.
var (
	ErrPromotionNotFound   = errors.New("invalid promotion code")
	ErrPromotionNotStarted = errors.New("promotion has not started yet")
	ErrPromotionExpired    = errors.New("promotion has expired")
)

// ErrAddressInvalid is returned when the shipping address does not
// belong to the ordering user.
var ErrAddressInvalid = errors.New("address does not belong to user")

// ValidationError reports a malformed or missing request field. It is
// raised before any transaction opens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// BelowMinimumError is returned when an order total does not reach a
// promotion's minimum order value. Minimum is carried for display.
type BelowMinimumError struct {
	Minimum int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("order amount must be at least %d", e.Minimum)
}

// VariantNotFoundError is returned when a checkout or cart line names a
// variant that does not exist in the catalog. Unlike ErrNotFound it is
// a business failure of the request, not a missing resource.
type VariantNotFoundError struct {
	VariantID int64
}

func (e *VariantNotFoundError) Error() string {
	return fmt.Sprintf("variant %d does not exist", e.VariantID)
}

// InsufficientStockError is returned when a variant cannot cover the
// requested quantity.
type InsufficientStockError struct {
	VariantID int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %d: available %d, requested %d",
		e.VariantID, e.Available, e.Requested)
}

// PriceMismatchError is returned when the client-submitted unit price
// differs from the catalog price, protecting against stale carts.
type PriceMismatchError struct {
	VariantID int64
	Stored    int64
	Provided  int64
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("price mismatch for variant %d: catalog %d, provided %d",
		e.VariantID, e.Stored, e.Provided)
}

// InvalidTransitionError is returned when an order status change is not
// allowed by the lifecycle state machine.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// IsBusiness reports whether err is a business-rule failure that should
// surface to the client as a 400 with its reason, as opposed to an
// infrastructure error.
func IsBusiness(err error) bool {
	switch {
	case errors.Is(err, ErrPromotionNotFound),
		errors.Is(err, ErrPromotionNotStarted),
		errors.Is(err, ErrPromotionExpired),
		errors.Is(err, ErrAddressInvalid):
		return true
	}

	var (
		validation *ValidationError
		belowMin   *BelowMinimumError
		variant    *VariantNotFoundError
		stock      *InsufficientStockError
		price      *PriceMismatchError
		transition *InvalidTransitionError
	)
	return errors.As(err, &validation) ||
		errors.As(err, &belowMin) ||
		errors.As(err, &variant) ||
		errors.As(err, &stock) ||
		errors.As(err, &price) ||
		errors.As(err, &transition)
}
