// api/util/validation_util.go

package util

import (
	"fmt"

	echo_errors "github.com/dev-mohitbeniwal/weathergate/api/errors"
	"github.com/dev-mohitbeniwal/weathergate/api/model"
)

// CertificateRequest lists the certifiers we trust and, per certificate type,
// the fields we ask the holder to reveal.
type CertificateRequest struct {
	Certifiers []string
	Types      map[string][]string
}

type ValidationUtil struct {
	request CertificateRequest
}

func NewValidationUtil(request CertificateRequest) *ValidationUtil {
	return &ValidationUtil{request: request}
}

func (v *ValidationUtil) ValidateCredential(cred model.Credential) error {
	if cred.Type == "" {
		return fmt.Errorf("%w: certificate type cannot be empty", echo_errors.ErrInvalidCredential)
	}
	if cred.Issuer == "" {
		return fmt.Errorf("%w: certifier cannot be empty", echo_errors.ErrInvalidCredential)
	}
	if !v.trusted(cred.Issuer) {
		return fmt.Errorf("%w: %s", echo_errors.ErrUntrustedIssuer, cred.Issuer)
	}
	fields, ok := v.request.Types[cred.Type]
	if !ok {
		return fmt.Errorf("%w: certificate type %q was not requested", echo_errors.ErrInvalidCredential, cred.Type)
	}
	for _, f := range fields {
		if _, present := cred.Fields[f]; !present {
			return fmt.Errorf("%w: field %q not revealed", echo_errors.ErrInvalidCredential, f)
		}
	}
	return nil
}

// FilterCredentials keeps the credentials that pass ValidateCredential and
// returns the rejection reasons for the rest.
func (v *ValidationUtil) FilterCredentials(creds []model.Credential) ([]model.Credential, []error) {
	var accepted []model.Credential
	var rejected []error
	for _, c := range creds {
		if err := v.ValidateCredential(c); err != nil {
			rejected = append(rejected, err)
			continue
		}
		accepted = append(accepted, c)
	}
	return accepted, rejected
}

func (v *ValidationUtil) trusted(issuer string) bool {
	for _, c := range v.request.Certifiers {
		if c == issuer {
			return true
		}
	}
	return false
}
