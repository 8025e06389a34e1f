package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidLineItem    = errors.New("invalid line item")
	ErrEmptyCustomerName  = errors.New("customer name cannot be empty")
	ErrNoLineItems        = errors.New("quotation needs at least one product with a matching quantity")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrProductNotFound    = errors.New("product not found")
	ErrNumberingCollision = errors.New("quotation number already in use")
	ErrNotFound           = errors.New("quotation not found")
	ErrInvalidStatus      = errors.New("unknown quotation status")
	ErrInvalidDate        = errors.New("quotation date must be YYYY-MM-DD")
)

// LineError ties a validation problem to a submitted line (1-based).
type LineError struct {
	Line      int
	ProductID uint
	Err       error
}

func (e *LineError) Error() string {
	if errors.Is(e.Err, ErrProductNotFound) {
		return fmt.Sprintf("line %d: product with id %d not found", e.Line, e.ProductID)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ValidationError carries every problem found in one submission.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Unwrap lets errors.Is match any of the collected problems.
func (e *ValidationError) Unwrap() []error { return e.Problems }

// Messages returns one message per problem, in detection order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return msgs
}

// PersistenceError wraps a storage failure. No partial data was written.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
