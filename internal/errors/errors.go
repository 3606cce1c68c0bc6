package errors

import (
	"errors"
	"net/http"

	"blogsphere/internal/envelope"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when trying to register an existing email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrBlogNotFound is returned when a blog is not found.
	ErrBlogNotFound = errors.New("blog not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrPhotoNotFound is returned when a photo is not found.
	ErrPhotoNotFound = errors.New("photo not found")
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrForbidden is returned when the caller does not own the document.
	ErrForbidden = errors.New("you are not allowed to modify this resource")
	// ErrCannotFollowSelf is returned on a self-follow attempt.
	ErrCannotFollowSelf = errors.New("cannot follow yourself")
	// ErrAlreadyFollowing is returned when the follow edge already exists.
	ErrAlreadyFollowing = errors.New("already following this user")
	// ErrNotFollowing is returned when unfollowing a user that is not followed.
	ErrNotFollowing = errors.New("not following this user")
	// ErrInvalidToken is returned when a bearer token is malformed, expired or revoked.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrEmptyUpload is returned when a photo upload has no content.
	ErrEmptyUpload = errors.New("uploaded file is empty")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to the failure envelope.
func (e *HTTPError) ToErrorResponse() envelope.Error {
	return envelope.Fail(e.StatusCode, e.Message, e.Code)
}

var mapping = []struct {
	err    error
	status int
	code   string
}{
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrBlogNotFound, http.StatusNotFound, "BLOG_NOT_FOUND"},
	{ErrCommentNotFound, http.StatusNotFound, "COMMENT_NOT_FOUND"},
	{ErrPhotoNotFound, http.StatusNotFound, "PHOTO_NOT_FOUND"},
	{ErrNotificationNotFound, http.StatusNotFound, "NOTIFICATION_NOT_FOUND"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrCannotFollowSelf, http.StatusBadRequest, "CANNOT_FOLLOW_SELF"},
	{ErrAlreadyFollowing, http.StatusConflict, "ALREADY_FOLLOWING"},
	{ErrNotFollowing, http.StatusNotFound, "NOT_FOLLOWING"},
	{ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{ErrEmptyUpload, http.StatusBadRequest, "EMPTY_UPLOAD"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are unwrapped.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mapping {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
