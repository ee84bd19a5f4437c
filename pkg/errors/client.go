// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// Validation represents a request that is structurally valid JSON but breaks
// a request rule (missing aggregations, empty names, ...).
type Validation struct {
	base
}

// Error returns the error message for Validation.
func (v Validation) Error() string {
	return v.error()
}

// Unwrap returns the underlying cause, if any.
func (v Validation) Unwrap() error {
	return v.unwrap()
}

// NewValidation creates a new Validation error with the provided message.
func NewValidation(message string, err ...error) Validation {
	return Validation{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Parse represents malformed JSON text.
type Parse struct {
	base
}

// Error returns the error message for Parse.
func (p Parse) Error() string {
	return p.error()
}

// Unwrap returns the underlying decoder error.
func (p Parse) Unwrap() error {
	return p.unwrap()
}

// NewParse creates a new Parse error with the provided message.
func NewParse(message string, err ...error) Parse {
	return Parse{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// TypeMismatch represents a JSON value of the wrong kind, e.g. a number where
// an object is expected.
type TypeMismatch struct {
	base
}

// Error returns the error message for TypeMismatch.
func (t TypeMismatch) Error() string {
	return t.error()
}

// Unwrap returns the underlying cause, if any.
func (t TypeMismatch) Unwrap() error {
	return t.unwrap()
}

// NewTypeMismatch creates a new TypeMismatch error with the provided message.
func NewTypeMismatch(message string, err ...error) TypeMismatch {
	return TypeMismatch{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NoVariantSelected is returned when an aggregation carries no computation
// kind at all.
type NoVariantSelected struct {
	base
}

// Error returns the error message for NoVariantSelected.
func (n NoVariantSelected) Error() string {
	return n.error()
}

// NewNoVariantSelected creates a new NoVariantSelected error with the provided message.
func NewNoVariantSelected(message string, err ...error) NoVariantSelected {
	return NoVariantSelected{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// MultipleVariantsSelected is returned when an aggregation carries more than
// one computation kind.
type MultipleVariantsSelected struct {
	base
}

// Error returns the error message for MultipleVariantsSelected.
func (m MultipleVariantsSelected) Error() string {
	return m.error()
}

// NewMultipleVariantsSelected creates a new MultipleVariantsSelected error with the provided message.
func NewMultipleVariantsSelected(message string, err ...error) MultipleVariantsSelected {
	return MultipleVariantsSelected{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
