// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "fmt"

// base holds the message and optional cause shared by every error type of
// this package.
type base struct {
	message string
	err     error
}

// error renders "message" or "message: cause"; every embedding type
// formats through it.
func (b base) error() string {
	if b.err == nil {
		return b.message
	}
	return fmt.Sprintf("%s: %v", b.message, b.err)
}

// unwrap exposes the joined causes to errors.Is / errors.As.
func (b base) unwrap() error {
	return b.err
}
