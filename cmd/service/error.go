// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"
)

func wrapError(ctx context.Context, err error) error {

	f := func(err error) error {
		if err == nil {
			return &InternalServerError{
				Message: "unknown error",
			}
		}

		var (
			validation         errors.Validation
			parse              errors.Parse
			typeMismatch       errors.TypeMismatch
			noVariant          errors.NoVariantSelected
			multipleVariants   errors.MultipleVariantsSelected
			serviceUnavailable errors.ServiceUnavailable
		)
		switch {
		case stderrors.As(err, &validation),
			stderrors.As(err, &parse),
			stderrors.As(err, &typeMismatch),
			stderrors.As(err, &noVariant),
			stderrors.As(err, &multipleVariants):
			return &BadRequestError{
				Message: err.Error(),
			}
		case stderrors.As(err, &serviceUnavailable):
			return &ServiceUnavailableError{
				Message: err.Error(),
			}
		default:
			return &InternalServerError{
				Message: err.Error(),
			}
		}
	}

	slog.ErrorContext(ctx, "request failed",
		"error", err,
	)
	return f(err)
}

// statusCode returns the HTTP status of an error built by wrapError.
func statusCode(err error) int {
	switch err.(type) {
	case *BadRequestError:
		return http.StatusBadRequest
	case *ServiceUnavailableError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
