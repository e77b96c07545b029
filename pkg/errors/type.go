package errors

// ValidationError represents a validation failure for a single field.
type ValidationError struct {
	Code     int      `json:"code"`
	Field    string   `json:"field"`
	Messages []string `json:"messages"`
}

// ValidationErrorCollector accumulates validation errors across fields.
type ValidationErrorCollector struct {
	errors []*ValidationError
}

// HTTPError represents an HTTP error with a status code and message.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}
