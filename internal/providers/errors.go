package providers

import (
	"errors"
	"fmt"
)

// RateLimitError is returned when the provider answers HTTP 429.
type RateLimitError struct {
	Provider string
	Body     string
}

func (e *RateLimitError) Error() string {
	if e.Provider == "" {
		return "rate limited"
	}
	return e.Provider + ": rate limited"
}

// AuthError is returned for missing or rejected credentials.
type AuthError struct {
	Provider string
	Message  string
}

func (e *AuthError) Error() string {
	return "authentication error: " + e.Message
}

// ServerError is returned for 5xx responses.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Body)
}

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// classifyStatus maps a non-200 status to the package's error types.
func classifyStatus(provider string, status int, body []byte) error {
	switch {
	case status == 429:
		return &RateLimitError{Provider: provider, Body: string(body)}
	case status == 401 || status == 403:
		return &AuthError{Provider: provider, Message: string(body)}
	case status >= 500:
		return &ServerError{StatusCode: status, Body: string(body)}
	default:
		return fmt.Errorf("API error (status %d): %s", status, string(body))
	}
}
