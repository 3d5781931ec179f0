package httperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/BerylCAtieno/persona-insights/internal/llm"
)

// ErrorCode is the machine-readable API error code.
type ErrorCode string

const (
	ErrorCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrorCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrorCodeLLM          ErrorCode = "LLM_ERROR"
	ErrorCodeLLMAuth      ErrorCode = "LLM_AUTH_ERROR"
	ErrorCodeLLMTimeout   ErrorCode = "LLM_TIMEOUT"
)

// ErrorResponse is the JSON body of an API error.
type ErrorResponse struct {
	ErrorCode string         `json:"error_code"`
	ErrorType string         `json:"error_type"`
	Message   string         `json:"message"`
	RequestID *string        `json:"request_id"`
	Details   map[string]any `json:"details,omitempty"`
}

// Error is the internal API error.
type Error struct {
	Code    ErrorCode
	Status  int
	Type    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return e.Message
}

// Response converts err into a status code and response body.
func Response(err error, requestID string) (int, ErrorResponse) {
	apiErr := FromError(err)
	if apiErr == nil {
		apiErr = NewInternalError("unknown error")
	}

	var requestIDPtr *string
	if requestID != "" {
		requestIDPtr = &requestID
	}

	return apiErr.Status, ErrorResponse{
		ErrorCode: string(apiErr.Code),
		ErrorType: apiErr.Type,
		Message:   apiErr.Message,
		RequestID: requestIDPtr,
		Details:   apiErr.Details,
	}
}

// FromError maps domain errors onto API errors.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return NewValidationError(validationErrors)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Code:    ErrorCodeLLMTimeout,
			Status:  http.StatusGatewayTimeout,
			Type:    "LLMTimeoutError",
			Message: "Insight generation timed out",
		}
	}

	if errors.Is(err, llm.ErrGenerationFailed) {
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) && statusErr.Unauthorized() {
			return &Error{
				Code:    ErrorCodeLLMAuth,
				Status:  http.StatusBadGateway,
				Type:    "LLMAuthError",
				Message: "Insight generation failed: the provider rejected the API key",
			}
		}
		return &Error{
			Code:    ErrorCodeLLM,
			Status:  http.StatusBadGateway,
			Type:    "LLMError",
			Message: "Insight generation failed",
		}
	}

	return NewInternalError(err.Error())
}

// NewInternalError builds a 500 error.
func NewInternalError(message string) *Error {
	return &Error{
		Code:    ErrorCodeInternal,
		Status:  http.StatusInternalServerError,
		Type:    "InternalError",
		Message: message,
	}
}

// NewInvalidInput builds a 400 error for malformed request bodies.
func NewInvalidInput(message string) *Error {
	return &Error{
		Code:    ErrorCodeInvalidInput,
		Status:  http.StatusBadRequest,
		Type:    "InvalidInputError",
		Message: message,
	}
}

// NewNotFound builds a 404 error.
func NewNotFound(message string) *Error {
	return &Error{
		Code:    ErrorCodeNotFound,
		Status:  http.StatusNotFound,
		Type:    "NotFoundError",
		Message: message,
	}
}

// NewValidationError lists the failing fields.
func NewValidationError(errs validator.ValidationErrors) *Error {
	fields := FieldMessages(errs)
	details := make(map[string]any, len(fields))
	for field, message := range fields {
		details[field] = message
	}
	return &Error{
		Code:    ErrorCodeValidation,
		Status:  http.StatusBadRequest,
		Type:    "ValidationError",
		Message: "Invalid persona input",
		Details: details,
	}
}

// FieldMessages turns validator errors into one readable message per field, keyed by the
// snake_case struct field name without slice indexes ("Interests[2]" -> "interests").
func FieldMessages(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := snakeCase(fe.Field())
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "option":
		return fmt.Sprintf("%q is not a valid %s", fe.Value(), strings.ReplaceAll(fe.Param(), "_", " "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func snakeCase(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
