package response

const (
	// MessageSuccess is the message returned on successful responses.
	MessageSuccess = "Success"
	// DefaultErrorMessage is returned when the error is not user-facing.
	DefaultErrorMessage = "Something went wrong"
)

const (
	// InternalServerErrorCode is the error code for unclassified errors.
	InternalServerErrorCode = 500
	// ValidationErrorCode is the error code for validation failures.
	ValidationErrorCode = 400
)

// ValidationErrorMsg is the message for collected validation failures.
const ValidationErrorMsg = "Validation failed"
