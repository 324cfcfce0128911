package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrInvalidToken = errors.New("invalid token")
var ErrCourseNotFound = errors.New("course not found")
var ErrLectureNotFound = errors.New("lecture not found")
var ErrTestNotFound = errors.New("test not found")
var ErrNotCourseAuthor = errors.New("you are not course author")
var ErrNotImage = errors.New("not image")
var ErrFileSize = errors.New("file size error")
var ErrSlugTaken = errors.New("course with this slug already exists")
var ErrDuplicateLecture = errors.New("lecture with this order already exists in the course")
var ErrServiceUnavailable = errors.New("backing service is not configured")

var (
	ErrEmptyChoices        = NewValidationError("choices", "empty choices")
	ErrMalformedChoices    = NewValidationError("choices", "malformed JSON")
	ErrInsufficientChoices = NewValidationError("choices", "insufficient choices")
)

// ValidationError reports malformed or missing input for a single field.
// The request may be corrected and resubmitted.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrLectureNotFound) ||
		errors.Is(err, ErrTestNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrSlugTaken) ||
		errors.Is(err, ErrDuplicateLecture) ||
		errors.Is(err, ErrUserExists)
}

func AsValidation(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
