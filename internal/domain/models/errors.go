package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamDataUnavailable marks market or search data that could not be fetched.
	ErrUpstreamDataUnavailable = errors.New("upstream data unavailable")
	// ErrInsufficientHistory is returned when a symbol has too few candles to score.
	ErrInsufficientHistory = errors.New("insufficient price history")
)

type DeliveryErrorKind string

const (
	DeliveryTransport DeliveryErrorKind = "transport"
	DeliveryProtocol  DeliveryErrorKind = "protocol"
)

// DeliveryError describes a failed webhook delivery.
type DeliveryError struct {
	Kind    DeliveryErrorKind
	Message string
	Err     error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("delivery %s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("delivery %s error: %s", e.Kind, e.Message)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// IsDeliveryKind reports whether err is a DeliveryError of the given kind.
func IsDeliveryKind(err error, kind DeliveryErrorKind) bool {
	var de *DeliveryError
	return errors.As(err, &de) && de.Kind == kind
}
