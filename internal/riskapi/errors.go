package riskapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidBaseURL is returned by NewClient for unusable endpoints.
var ErrInvalidBaseURL = errors.New("invalid analysis API base URL")

// StatusError reports a non-2xx response. The body is not parsed.
type StatusError struct {
	Status     string
	StatusCode int
}

func (e *StatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("HTTP error! Status: %s", status)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
