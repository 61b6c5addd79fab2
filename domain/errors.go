package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPayload is returned when a webhook body lacks an identifying field.
	ErrMalformedPayload = errors.New("malformed webhook payload")
	// ErrUnknownPayloadShape is returned when a webhook body matches no known envelope.
	ErrUnknownPayloadShape = errors.New("unknown webhook payload shape")
	// ErrSearchFailed hides any fault raised while scanning the index.
	ErrSearchFailed = errors.New("search failed")
	// ErrInvalidRequest marks boundary input that failed validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// PayloadError describes which part of a webhook payload could not be normalized.
type PayloadError struct {
	Shape  PayloadShape
	Field  string
	Reason string
}

func (e *PayloadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s payload: %s", e.Shape, e.Reason)
	}
	return fmt.Sprintf("%s payload: %s: %s", e.Shape, e.Field, e.Reason)
}

func (e *PayloadError) Unwrap() error {
	return ErrMalformedPayload
}

func missingField(shape PayloadShape, field string) error {
	return &PayloadError{Shape: shape, Field: field, Reason: "required field is missing"}
}
