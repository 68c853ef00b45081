package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below wraps exactly one of these,
// so callers can branch with errors.Is on either level.
var (
	// ErrValidation is a caller-correctable input problem.
	ErrValidation = errors.New("validation failure")

	// ErrAuthentication means the supplied credentials did not match.
	ErrAuthentication = errors.New("authentication failure")

	// ErrResourceExhausted means a bounded resource ran out.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrInconsistent means a computed value failed validation mid-operation.
	// The operation was aborted and the affected field left untouched.
	ErrInconsistent = errors.New("internal inconsistency")
)

var (
	ErrInvalidAmount      = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidTaxID       = fmt.Errorf("%w: invalid tax id", ErrValidation)
	ErrInvalidName        = fmt.Errorf("%w: invalid name", ErrValidation)
	ErrInvalidPassword    = fmt.Errorf("%w: password must have at least 8 characters, with upper case, lower case, digit and symbol", ErrValidation)
	ErrInvalidIncome      = fmt.Errorf("%w: invalid monthly income", ErrValidation)
	ErrYieldPeriodTooLong = fmt.Errorf("%w: yield catch-up period too long", ErrValidation)
	ErrNilClient          = fmt.Errorf("%w: client is nil", ErrValidation)
	ErrNilAccount         = fmt.Errorf("%w: account is nil", ErrValidation)
	ErrUnknownAccountType = fmt.Errorf("%w: unknown account type", ErrValidation)

	ErrWrongPassword = fmt.Errorf("%w: current password is incorrect", ErrAuthentication)

	ErrAccountNumbersExhausted = fmt.Errorf("%w: could not draw a unique account number", ErrResourceExhausted)
)
