package billing

import "fmt"

// ErrorCode classifies a billing failure for callers.
type ErrorCode string

const (
	CodeInvalidAmount          ErrorCode = "invalid_amount"
	CodeAlreadyProcessed       ErrorCode = "already_processed"
	CodeNotDue                 ErrorCode = "not_due"
	CodeNotFound               ErrorCode = "not_found"
	CodeInvalidStateTransition ErrorCode = "invalid_state_transition"
	CodeProcessorFailure       ErrorCode = "processor_failure"
	CodeInternal               ErrorCode = "internal_error"
)

// Error carries a failure code plus a short, non-sensitive message.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a billing error.
func NewError(code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg}
}
