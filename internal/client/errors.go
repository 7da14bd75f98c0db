package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any 401 answer from the API
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotLoggedIn is returned before a call that needs a token when none is stored
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// IsUnauthorized reports whether err means the credential was rejected or missing
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotLoggedIn)
}
