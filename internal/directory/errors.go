package directory

import "fmt"

// TransportError means the request never produced a usable response: it could
// not be sent, no response arrived, or the body could not be read or decoded.
type TransportError struct {
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("directory request %s failed: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError means the directory service answered with a non-success status.
type UpstreamError struct {
	Path       string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("directory request %s returned status %d", e.Path, e.StatusCode)
}
