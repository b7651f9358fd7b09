package warehouse

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName       = errors.New("invalid item name")
	ErrAlreadyExists     = errors.New("item already exists")
	ErrNotFound          = errors.New("item not found")
	ErrUnknownItem       = errors.New("item is not in the catalog")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPersistence       = errors.New("persisting warehouse record failed")
)

// InsufficientStockError reports a withdrawal larger than the stock on hand.
type InsufficientStockError struct {
	Item      string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Item, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// PersistenceError wraps a failed save of one record.
type PersistenceError struct {
	Record string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Record, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// IsDomainError reports whether err is a validation outcome the user can fix,
// as opposed to an infrastructure failure.
func IsDomainError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrAlreadyExists),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnknownItem),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInsufficientStock):
		return true
	}
	return false
}
