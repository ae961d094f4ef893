// Package httpx holds small HTTP helpers shared by the backend API client and
// the storage transfer client.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// maxErrorBody caps how much of an error response body is read when looking
// for a server-supplied message.
const maxErrorBody = 4 << 10

// StatusError reports a non-success HTTP response. Message carries the
// server-supplied text when the body had a JSON {"message": ...} field, and
// is empty otherwise.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

// ErrorFromResponse builds a StatusError from a non-2xx response, consuming
// at most a few KB of the body to extract the server message.
func ErrorFromResponse(resp *http.Response) *StatusError {
	se := &StatusError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return se
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		se.Message = payload.Message
	}
	return se
}

// IsTimeout reports whether err is a deadline or network timeout failure.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
