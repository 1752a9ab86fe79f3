// Package apierror defines the JSON envelopes returned for 4xx/5xx responses.
// Handlers never serialize raw errors; store and driver messages stay in the logs.
package apierror

// Stable machine-readable codes. Auth failures carry the AuthError code
// produced by the service layer instead.
const (
	CodeRateLimited         = "rate-limited"
	CodeInsufficientBalance = "insufficient-balance"
	CodeInternal            = "internal"
)

// APIError is the envelope for every non-validation error.
type APIError struct {
	Detail string         `json:"detail"`
	Code   string         `json:"code,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func WithCode(code, msg string) *APIError {
	return &APIError{Detail: msg, Code: code}
}

// Internal is the only body a 500 ever carries.
func Internal(msg string) *APIError {
	if msg == "" {
		msg = "Internal server error"
	}
	return &APIError{Detail: msg, Code: CodeInternal}
}

// InsufficientBalance reports a rejected redemption together with the numbers
// the client needs to explain it.
func InsufficientBalance(msg string, balance, required int64) *APIError {
	return &APIError{
		Detail: msg,
		Code:   CodeInsufficientBalance,
		Meta:   map[string]any{"balance": balance, "required": required},
	}
}

// ValidationError lists offending request fields with a short reason each.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Fields: fields}
}

// Field reports a single rejected field; an empty field yields no entries.
func Field(field, msg string) *ValidationError {
	fields := map[string]string{}
	if field != "" {
		fields[field] = msg
	}
	return &ValidationError{Detail: msg, Fields: fields}
}
