// Package envelope defines the uniform response body shared by the server
// handlers and the API client: {message, statusCode, data} on success and
// {message, statusCode, code} on failure.
package envelope

// Response is the success envelope.
type Response[T any] struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
}

// Error is the failure envelope. Code is a stable machine-readable identifier.
type Error struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code,omitempty"`
}

// OK builds a success envelope.
func OK[T any](statusCode int, message string, data T) Response[T] {
	return Response[T]{Message: message, StatusCode: statusCode, Data: data}
}

// Fail builds a failure envelope.
func Fail(statusCode int, message, code string) Error {
	return Error{Message: message, StatusCode: statusCode, Code: code}
}

// Page wraps a list with its pagination cursor.
type Page[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
