package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSaldoExists         = errors.New("saldo already exists for this user")
	ErrValidation          = errors.New("validation failed")
)

// NotFoundError carries the caller-facing message ("saldo with id 3 not found")
// while still matching errors.Is(err, ErrNotFound).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFoundf(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError names the first violated rule. The rule text is part of the
// contract: callers echo it verbatim in user-facing feedback.
type ValidationError struct {
	Rule string
}

func (e *ValidationError) Error() string { return e.Rule }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func Invalid(rule string) error {
	return &ValidationError{Rule: rule}
}
