package errors

import (
	"errors"
	"fmt"
)

// ErrNoAccessToken is returned when a token endpoint answered successfully
// but the response carried no access token.
var ErrNoAccessToken = errors.New("token response contained no access token")

// RemoteError is returned when a provider answered with a non-success status.
// It carries the status code and raw body so callers can decide severity;
// classification beyond transport-vs-remote is left to them.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// NewRemoteError creates a RemoteError for a non-success provider response.
func NewRemoteError(statusCode int, body string) *RemoteError {
	return &RemoteError{StatusCode: statusCode, Body: body}
}

// AsRemoteError extracts a RemoteError from the chain, or nil.
func AsRemoteError(err error) *RemoteError {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr
	}
	return nil
}

// IsRemoteError reports whether the provider rejected the call. Anything
// else coming out of a provider client is a transport-level failure.
func IsRemoteError(err error) bool {
	return AsRemoteError(err) != nil
}
