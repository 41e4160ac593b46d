package github

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoToken is returned when no GitHub token could be found in any source.
var ErrNoToken = errors.New("no GitHub token found")

// AuthError reports a missing or rejected credential. It is user-correctable:
// run `reviewwatch auth login` or set GITHUB_TOKEN.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}
	return "authentication failed: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// UpstreamError carries the first error of a GraphQL error payload.
type UpstreamError struct {
	Message string
	Type    string
	Path    []string
	// Count is the total number of errors in the payload.
	Count int
}

func (e *UpstreamError) Error() string {
	var sb strings.Builder
	sb.WriteString("GitHub API error")
	if e.Type != "" {
		sb.WriteString(" (" + e.Type + ")")
	}
	sb.WriteString(": " + e.Message)
	if len(e.Path) > 0 {
		sb.WriteString(" at " + strings.Join(e.Path, "."))
	}
	if e.Count > 1 {
		fmt.Fprintf(&sb, " (and %d more)", e.Count-1)
	}
	return sb.String()
}

// TransportError wraps network-level failures: DNS, timeouts, connection
// resets, unexpected HTTP statuses and undecodable bodies.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is, or wraps, an *AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
