// Package errors provides standardized error handling for BPMN workflow
// integration and the HTTP API.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Input errors
	ErrCodeInvalidArgument      ErrorCode = "INVALID_ARGUMENT"
	ErrCodeTextTooShort         ErrorCode = "TEXT_TOO_SHORT"
	ErrCodeTextTooLong          ErrorCode = "TEXT_TOO_LONG"
	ErrCodeInsufficientVersions ErrorCode = "INSUFFICIENT_VERSIONS"
	ErrCodeWorkshopIncomplete   ErrorCode = "WORKSHOP_INCOMPLETE"

	// Paywall
	ErrCodeAnalysisLimitReached ErrorCode = "ANALYSIS_LIMIT_REACHED"
	ErrCodeAccessCheckFailed    ErrorCode = "ACCESS_CHECK_FAILED"
	ErrCodeWebhookInvalid       ErrorCode = "WEBHOOK_INVALID"

	// Storage
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeSearchIndexFailed        ErrorCode = "SEARCH_INDEX_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"

	// Delivery
	ErrCodeEmailSendFailed    ErrorCode = "EMAIL_SEND_FAILED"
	ErrCodeEventPublishFailed ErrorCode = "EVENT_PUBLISH_FAILED"
	ErrCodeReportRenderFailed ErrorCode = "REPORT_RENDER_FAILED"

	// Generic
	ErrCodeAuthentication   ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout          ErrorCode = "TIMEOUT_ERROR"
	ErrCodeResourceNotFound ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeBusinessRule     ErrorCode = "BUSINESS_RULE_VIOLATION"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// As finds a StandardError in err's chain.
func As(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
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

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
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

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidArgumentError(details string) *StandardError {
	return newError(ErrCodeInvalidArgument, "Invalid argument", details, false)
}

// NewTextTooShortError reports mission text under the minimum length.
func NewTextTooShortError(minLength int) *StandardError {
	return newError(ErrCodeTextTooShort,
		fmt.Sprintf("Mission statement must be at least %d characters", minLength), "", false).
		WithMetadata("minLength", minLength)
}

func NewTextTooLongError(maxLength int) *StandardError {
	return newError(ErrCodeTextTooLong,
		fmt.Sprintf("Mission statement must be at most %d characters", maxLength), "", false).
		WithMetadata("maxLength", maxLength)
}

func NewInsufficientVersionsError(valid int) *StandardError {
	return newError(ErrCodeInsufficientVersions,
		"At least two scored, non-empty versions are required",
		fmt.Sprintf("%d valid version(s) supplied", valid), false)
}

func NewWorkshopIncompleteError() *StandardError {
	return newError(ErrCodeWorkshopIncomplete, "Purpose, audience and action verb are required", "", false)
}

// NewAnalysisLimitReachedError is returned when a caller used all free analyses.
func NewAnalysisLimitReachedError(used, limit int) *StandardError {
	return newError(ErrCodeAnalysisLimitReached, "Free analysis limit reached",
		fmt.Sprintf("%d of %d free analyses used", used, limit), false).
		WithMetadata("used", used).
		WithMetadata("limit", limit)
}

func NewAccessCheckFailedError(err error) *StandardError {
	return newError(ErrCodeAccessCheckFailed, "Access store error during access check", err.Error(), true)
}

func NewWebhookInvalidError(details string) *StandardError {
	return newError(ErrCodeWebhookInvalid, "Invalid purchase webhook payload", details, false)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Failed to connect to database", err.Error(), true)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, fmt.Sprintf("Query '%s' failed", queryType), err.Error(), true)
}

func NewQueryTimeoutError(queryType string) *StandardError {
	return newError(ErrCodeQueryTimeout, fmt.Sprintf("Query '%s' timed out", queryType), "", true)
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Failed to insert record", err.Error(), true)
}

func NewSearchIndexFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchIndexFailed, fmt.Sprintf("Failed to index document in '%s'", index), err.Error(), true)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, fmt.Sprintf("Search on '%s' failed", index), err.Error(), true)
}

func NewEmailSendFailedError(err error) *StandardError {
	return newError(ErrCodeEmailSendFailed, "Failed to send email", err.Error(), true)
}

func NewEventPublishFailedError(topic string, err error) *StandardError {
	return newError(ErrCodeEventPublishFailed, fmt.Sprintf("Failed to publish to '%s'", topic), err.Error(), true)
}

func NewReportRenderFailedError(err error) *StandardError {
	return newError(ErrCodeReportRenderFailed, "Failed to render report", err.Error(), false)
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return newError(ErrCodeBusinessRule, message, details, false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeResourceNotFound, fmt.Sprintf("Resource not found in %s", service), details, false)
}

func NewAuthenticationError(details string) *StandardError {
	return newError(ErrCodeAuthentication, "Authentication failed", details, false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the codes caught by boundary
// events. Codes missing from the map are thrown unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidArgument:    "INVALID_MISSION_TEXT",
	ErrCodeTextTooShort:       "INVALID_MISSION_TEXT",
	ErrCodeTextTooLong:        "INVALID_MISSION_TEXT",
	ErrCodeWorkshopIncomplete: "INVALID_WORKSHOP_ANSWERS",
	ErrCodeQueryTimeout:       string(ErrCodeQueryExecutionFailed),
	ErrCodeReportRenderFailed: string(ErrCodeEmailSendFailed),
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeAccessCheckFailed,
		ErrCodeSearchIndexFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeEmailSendFailed,
		ErrCodeEventPublishFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeQueryTimeout,
		ErrCodeTimeout:
		return 2

	default:
		return 0 // business errors are not retried
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "ACCESS") || strings.Contains(codeStr, "LIMIT") || strings.Contains(codeStr, "WEBHOOK"):
		return "PAYWALL"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "EMAIL") || strings.Contains(codeStr, "EVENT") || strings.Contains(codeStr, "REPORT"):
		return "DELIVERY"
	case strings.Contains(codeStr, "AUTHENTICATION"):
		return "AUTH"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "TEXT") ||
		strings.Contains(codeStr, "VERSIONS") || strings.Contains(codeStr, "WORKSHOP"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// HTTPStatus maps an error code to the status the API answers with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidArgument, ErrCodeTextTooShort, ErrCodeTextTooLong,
		ErrCodeInsufficientVersions, ErrCodeWorkshopIncomplete, ErrCodeWebhookInvalid:
		return http.StatusBadRequest
	case ErrCodeAuthentication:
		return http.StatusUnauthorized
	case ErrCodeAnalysisLimitReached:
		return http.StatusPaymentRequired
	case ErrCodeResourceNotFound:
		return http.StatusNotFound
	case ErrCodeDatabaseConnectionFailed, ErrCodeAccessCheckFailed, ErrCodeSearchQueryFailed,
		ErrCodeExternalService, ErrCodeTimeout, ErrCodeQueryTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
