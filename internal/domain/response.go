package domain

import "errors"

// APIResponse is the success envelope every exposed operation returns.
type APIResponse[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ErrorResponse is the failure envelope. Message echoes the violated rule for
// validation failures and the entity description for not-found failures.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func Success[T any](message string, data T) *APIResponse[T] {
	return &APIResponse[T]{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

// ErrorFrom maps a domain error to the failure envelope. errors.As digs the
// typed error out of any wrapping, so the caller-facing message stays clean of
// call-site prefixes. Persistence failures are not leaked to callers verbatim.
func ErrorFrom(err error) ErrorResponse {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		return ErrorResponse{Status: "error", Message: validationErr.Rule}
	case errors.As(err, &notFoundErr):
		return ErrorResponse{Status: "error", Message: notFoundErr.Message}
	case errors.Is(err, ErrInsufficientBalance):
		return ErrorResponse{Status: "error", Message: ErrInsufficientBalance.Error()}
	case errors.Is(err, ErrSaldoExists):
		return ErrorResponse{Status: "error", Message: ErrSaldoExists.Error()}
	default:
		return ErrorResponse{Status: "error", Message: "an unexpected error occurred"}
	}
}
