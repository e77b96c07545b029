package errors

import "net/http"

// NewHTTPError returns a new HTTPError with the given code, message, and status code.
// If statusCode is 0, it defaults to http.StatusBadRequest.
func NewHTTPError(code int, message string, statusCode int) *HTTPError {
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	return &HTTPError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewUnauthorizedHTTPError returns a new unauthorized HTTP error.
func NewUnauthorizedHTTPError() *HTTPError {
	return &HTTPError{
		Code:       StatusUnauthorized,
		Message:    MessageUnauthorized,
		StatusCode: StatusUnauthorized,
	}
}

// NewForbiddenHTTPError returns a new forbidden HTTP error.
func NewForbiddenHTTPError() *HTTPError {
	return &HTTPError{
		Code:       StatusForbidden,
		Message:    MessageForbidden,
		StatusCode: StatusForbidden,
	}
}

// NewNotFoundHTTPError returns a new not found HTTP error.
func NewNotFoundHTTPError() *HTTPError {
	return &HTTPError{
		Code:       StatusNotFound,
		Message:    MessageNotFound,
		StatusCode: StatusNotFound,
	}
}

// Error returns the error message.
func (e *HTTPError) Error() string {
	return e.Message
}
