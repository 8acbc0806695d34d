// internal/common/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode identifies a failure class across workers and the HTTP API.
type ErrorCode string

const (
	ErrCodeInputEmpty           ErrorCode = "INPUT_EMPTY"
	ErrCodeValidation           ErrorCode = "VALIDATION_ERROR"
	ErrCodeParse                ErrorCode = "PARSE_ERROR"
	ErrCodePharmacyNotFound     ErrorCode = "PHARMACY_NOT_FOUND"
	ErrCodePrescriptionRequired ErrorCode = "PRESCRIPTION_REQUIRED"
	ErrCodeOrderNotFound        ErrorCode = "ORDER_NOT_FOUND"
	ErrCodeDocumentNotFound     ErrorCode = "DOCUMENT_NOT_FOUND"

	ErrCodeExternalServiceFailure ErrorCode = "EXTERNAL_SERVICE_FAILURE"
	ErrCodeLLMTimeout             ErrorCode = "LLM_TIMEOUT"
	ErrCodeLLMSynthesisFailed     ErrorCode = "LLM_SYNTHESIS_FAILED"

	ErrCodeStoreOperationFailed   ErrorCode = "STORE_OPERATION_FAILED"
	ErrCodeCatalogQueryFailed     ErrorCode = "CATALOG_QUERY_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the structured error every public operation returns.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error and returns it for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// BPMNError is what gets thrown back to the Zeebe engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables flattens the error into process variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Business errors
// ==========================

func NewInputEmptyError(field string) *StandardError {
	return newError(ErrCodeInputEmpty, "No symptom text provided", fmt.Sprintf("field: %s", field), false)
}

func NewValidationError(field, details string) *StandardError {
	return newError(ErrCodeValidation, fmt.Sprintf("Invalid value for %s", field), details, false).
		WithMetadata("field", field)
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParse, "Could not parse input", err.Error(), false)
}

func NewPharmacyNotFoundError(pharmacyID string) *StandardError {
	return newError(ErrCodePharmacyNotFound, "Pharmacy not found", fmt.Sprintf("pharmacyId: %s", pharmacyID), false)
}

func NewPrescriptionRequiredError(medicine string) *StandardError {
	return newError(ErrCodePrescriptionRequired, "Upload prescription to proceed", fmt.Sprintf("medicine: %s", medicine), false)
}

func NewOrderNotFoundError(orderID string) *StandardError {
	return newError(ErrCodeOrderNotFound, "Order not found", fmt.Sprintf("orderId: %s", orderID), false)
}

func NewDocumentNotFoundError(collection, id string) *StandardError {
	return newError(ErrCodeDocumentNotFound, "Document not found", fmt.Sprintf("collection: %s, id: %s", collection, id), false)
}

// ==========================
// Technical errors
// ==========================

// NewExternalServiceError marks a generative backend failure. It is logged and
// recovered inside the analysis path and never returned to callers.
func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalServiceFailure, fmt.Sprintf("External service '%s' failed", service), err.Error(), true)
}

func NewLLMTimeoutError() *StandardError {
	return newError(ErrCodeLLMTimeout, "Generative service timeout", "call exceeded configured timeout", true)
}

func NewLLMSynthesisFailedError(err error) *StandardError {
	return newError(ErrCodeLLMSynthesisFailed, "Generative service error", err.Error(), true)
}

func NewStoreOperationError(op string, err error) *StandardError {
	return newError(ErrCodeStoreOperationFailed, "Document store operation failed", fmt.Sprintf("op: %s, error: %s", op, err.Error()), true)
}

func NewCatalogQueryError(err error) *StandardError {
	return newError(ErrCodeCatalogQueryFailed, "Medicine catalog query failed", err.Error(), true)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed", fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// ==========================
// Inspection helpers
// ==========================

// AsStandard unwraps err into a *StandardError, if it carries one.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Code == code
}

// Normalize converts any error into a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandard(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreOperationFailed,
		ErrCodeCatalogQueryFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeLLMSynthesisFailed,
		ErrCodeExternalServiceFailure:
		return 3
	case ErrCodeLLMTimeout:
		return 1
	default:
		return 0
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"errorCategory": GetErrorCategory(stdErr.Code),
		"timestamp":     stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           string(stdErr.Code),
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case code == ErrCodeInputEmpty || code == ErrCodeParse || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.HasSuffix(codeStr, "NOT_FOUND"):
		return "NOT_FOUND"
	case code == ErrCodePrescriptionRequired:
		return "PHARMACY"
	case strings.Contains(codeStr, "LLM") || strings.Contains(codeStr, "EXTERNAL"):
		return "AI"
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "CATALOG"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
