package services

import (
	"errors"

	contextutils "ecoatlas/internal/utils"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes surfaced as client errors.
const (
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
	pqNotNullViolation    = "23502"
	pqStringTooLong       = "22001"
	pqInvalidText         = "22P02"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// storeError turns a driver error into an AppError. Constraint violations the
// handlers should have caught become client errors; everything else is a 500.
func storeError(err error, context string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqForeignKeyViolation:
			return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeForeignKeyViolation, contextutils.SeverityInfo,
				contextutils.ErrForeignKeyViolation.Message, pqErr.Detail, err)
		case pqCheckViolation, pqInvalidText:
			return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
				"Invalid field value", pqErr.Message, err)
		case pqNotNullViolation:
			return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeMissingRequired, contextutils.SeverityWarn,
				"Missing required fields", pqErr.Column, err)
		case pqStringTooLong:
			return contextutils.NewAppErrorWithCause(contextutils.ErrorCodeValidationFailed, contextutils.SeverityWarn,
				"Value too long", pqErr.Message, err)
		}
	}
	return contextutils.WrapErrorf(contextutils.ErrDatabaseQuery, "%s: %w", context, err)
}
