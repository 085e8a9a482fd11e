// api/auth/verifier.go

// Package auth is the boundary to the authentication collaborator: it turns a
// request into an identity key plus any certificates that identity presented.
package auth

import (
	"net/http"

	"github.com/dev-mohitbeniwal/weathergate/api/model"
)

// Result is what a verifier learned about the sender of a request.
type Result struct {
	Identity     string
	Certificates []model.Credential
}

// Verifier authenticates a request. It returns an error wrapping
// errors.ErrUnauthenticated when the sender cannot be identified.
type Verifier interface {
	Verify(r *http.Request) (*Result, error)
}
