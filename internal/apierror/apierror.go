// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// ShortageError carries the full shortfall list when a manufacturing run is
// rejected for lack of material stock. Materials holds one entry per material
// that fell short, never just the first one found.
type ShortageError struct {
	Detail    string      `json:"detail"`
	Materials interface{} `json:"materials"`
}

func NewShortage(msg string, materials interface{}) *ShortageError {
	return &ShortageError{Detail: msg, Materials: materials}
}
