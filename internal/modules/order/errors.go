package order

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOrder is returned when no resolvable line items remain
	// after validation.
	ErrEmptyOrder = errors.New("no valid items to place an order")

	// ErrNoStoreConfigured is returned when no fulfilling store can be
	// resolved.
	ErrNoStoreConfigured = errors.New("no store configured in the system")

	// ErrOrderNotFound is returned when an order id does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidRequest wraps checkout request validation failures so
	// handlers can distinguish them from server faults.
	ErrInvalidRequest = errors.New("invalid request")
)

// InvalidStatusError is returned when a status value is not a member of
// its enum.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status: %s", e.Value)
}
