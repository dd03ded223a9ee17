// pkg/msi/status.go - Windows Installer status codes and the error type that carries them.

package msi

import (
	"errors"
	"fmt"
)

// Status is the raw result code returned by a Windows Installer call.
// It is the only error channel the native API has.
type Status uint32

const (
	StatusSuccess            Status = 0    // ERROR_SUCCESS
	StatusAccessDenied       Status = 5    // ERROR_ACCESS_DENIED
	StatusInvalidParameter   Status = 87   // ERROR_INVALID_PARAMETER
	StatusCallNotImplemented Status = 120  // ERROR_CALL_NOT_IMPLEMENTED
	StatusMoreData           Status = 234  // ERROR_MORE_DATA
	StatusNoMoreItems        Status = 259  // ERROR_NO_MORE_ITEMS
	StatusUnknownProduct     Status = 1605 // ERROR_UNKNOWN_PRODUCT
	StatusUnknownProperty    Status = 1608 // ERROR_UNKNOWN_PROPERTY
	StatusBadConfiguration   Status = 1610 // ERROR_BAD_CONFIGURATION
)

// StatusKind groups raw status codes into the outcomes callers branch on.
type StatusKind int

const (
	KindSuccess StatusKind = iota
	KindNoMoreItems
	KindUnknownProduct
	KindUnknownProperty
	KindOther
)

// String returns the string representation of the StatusKind.
func (k StatusKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindNoMoreItems:
		return "no-more-items"
	case KindUnknownProduct:
		return "unknown-product"
	case KindUnknownProperty:
		return "unknown-property"
	default:
		return "other"
	}
}

var statusNames = map[Status]string{
	StatusSuccess:            "success",
	StatusAccessDenied:       "access denied",
	StatusInvalidParameter:   "invalid parameter",
	StatusCallNotImplemented: "call not implemented",
	StatusMoreData:           "more data is available",
	StatusNoMoreItems:        "no more items",
	StatusUnknownProduct:     "unknown product",
	StatusUnknownProperty:    "unknown property",
	StatusBadConfiguration:   "configuration data for this product is corrupt",
}

// Kind classifies the status.
func (s Status) Kind() StatusKind {
	switch s {
	case StatusSuccess:
		return KindSuccess
	case StatusNoMoreItems:
		return KindNoMoreItems
	case StatusUnknownProduct:
		return KindUnknownProduct
	case StatusUnknownProperty:
		return KindUnknownProperty
	default:
		return KindOther
	}
}

// String returns a readable name followed by the numeric code.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return fmt.Sprintf("%s (%d)", name, uint32(s))
	}
	return fmt.Sprintf("status %d", uint32(s))
}

// Error lets a Status be wrapped and matched with errors.Is.
func (s Status) Error() string {
	return s.String()
}

// StatusError reports a non-success status from a named operation.
type StatusError struct {
	Op       string
	Product  ProductCode
	Property Property
	Index    uint32
	Status   Status
}

func (e *StatusError) Error() string {
	switch {
	case e.Property != "":
		return fmt.Sprintf("msi: %s %s %q: %s", e.Op, e.Product, string(e.Property), e.Status)
	case !e.Product.IsZero():
		return fmt.Sprintf("msi: %s %s: %s", e.Op, e.Product, e.Status)
	case e.Op == opEnumProducts:
		return fmt.Sprintf("msi: %s at index %d: %s", e.Op, e.Index, e.Status)
	default:
		return fmt.Sprintf("msi: %s: %s", e.Op, e.Status)
	}
}

// Unwrap exposes the status so errors.Is(err, StatusUnknownProduct) works.
func (e *StatusError) Unwrap() error {
	return e.Status
}

// StatusOf returns the Status carried by err, if any.
func StatusOf(err error) (Status, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, true
	}
	var s Status
	if errors.As(err, &s) {
		return s, true
	}
	return 0, false
}
