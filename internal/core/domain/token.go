package domain

import "errors"

// Token verification failures. The middleware maps each to its own 401
// message so an expired session is never reported as a malformed one.
var (
	ErrTokenMissing = errors.New("missing authorization header")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
