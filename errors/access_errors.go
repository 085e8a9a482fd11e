// api/errors/access_errors.go
package errors

import "errors"

var (
	ErrIneligible        = errors.New("identity lacks the required certificate")
	ErrUnauthenticated   = errors.New("request is not authenticated")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrUntrustedIssuer   = errors.New("credential issued by an untrusted certifier")
	ErrRateLimited       = errors.New("rate limit exceeded")
)
