package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingCredential is returned before any request when no secret key resolves.
	ErrMissingCredential = errors.New("openai secret key is not configured")
	// ErrMalformedResponse is returned when a response body cannot be decoded or lacks an id.
	ErrMalformedResponse = errors.New("malformed openai response")
)

// RemoteError is a transport failure or a non-2xx answer from OpenAI.
type RemoteError struct {
	Op         string
	StatusCode int // 0 for transport failures
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("openai %s: %d %s: %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("openai %s: %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return fmt.Sprintf("openai %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("openai %s: request failed", e.Op)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsRemoteError reports whether err is a RemoteError
func IsRemoteError(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr)
}
