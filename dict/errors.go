package dict

import (
	"errors"
	"fmt"
)

// Lookup failures form a closed set so callers can branch on kind.
var (
	// ErrNoConnection indicates the transport found no network path.
	ErrNoConnection = errors.New("no internet connection")

	// ErrTimeout indicates the request exceeded the lookup deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrMalformedResponse indicates a success status whose body was not
	// the expected JSON array of entry objects.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-success response from the dictionary API, carrying a
// display message composed from the error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// UserMessage converts a lookup failure into the string shown to the user.
func UserMessage(err error) string {
	var apiErr *APIError
	switch {
	case errors.Is(err, ErrNoConnection):
		return "No internet connection."
	case errors.Is(err, ErrTimeout):
		return "The request timed out. Please try again."
	case errors.Is(err, ErrMalformedResponse):
		return "Unexpected response format."
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return fmt.Sprintf("Lookup failed: %v", err)
	}
}
