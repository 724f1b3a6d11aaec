// ABOUTME: Error types for the Nello client
// ABOUTME: Distinguishes login rejection from session expiry signals

package nello

// LoginError indicates the login endpoint was reachable but rejected the
// credentials. Message carries the server's diagnostic, when present.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	if e.Message == "" {
		return "login failed"
	}
	return "login failed: " + e.Message
}

// TokenExpiredError signals that the authenticated session has expired
// (the server classifies the call with status "400"). It is handled inside
// the client by a single re-login and retry and never escapes to callers.
type TokenExpiredError struct {
	Message string
}

func (e *TokenExpiredError) Error() string {
	if e.Message == "" {
		return "session token expired"
	}
	return "session token expired: " + e.Message
}
