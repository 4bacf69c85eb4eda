package product

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the UPC matches neither a product nor an alternate.
	ErrNotFound = errors.New("product not found")
	// ErrDataIntegrity means the store holds data that breaks the catalog
	// invariants (duplicate UPCs, missing fields, inconsistent case packs).
	ErrDataIntegrity = errors.New("data integrity violation")
)

// IntegrityError describes a single integrity violation. It matches ErrDataIntegrity with errors.Is.
type IntegrityError struct {
	UPC    string
	Field  string
	Reason string
	Err    error
}

func (e *IntegrityError) Error() string {
	msg := fmt.Sprintf("%s: upc %s", ErrDataIntegrity, e.UPC)
	if e.Field != "" {
		msg += ": field " + e.Field
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrDataIntegrity
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func integrity(upc, field, reason string) error {
	return &IntegrityError{UPC: upc, Field: field, Reason: reason}
}
