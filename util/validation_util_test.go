package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	echo_errors "github.com/dev-mohitbeniwal/weathergate/api/errors"
	"github.com/dev-mohitbeniwal/weathergate/api/model"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

func newValidator() *util.ValidationUtil {
	return util.NewValidationUtil(util.CertificateRequest{
		Certifiers: []string{"trusted"},
		Types:      map[string][]string{"cool-cert": {"cool"}},
	})
}

func TestValidateCredential(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		cred    model.Credential
		wantErr error
	}{
		{"valid", model.Credential{Type: "cool-cert", Issuer: "trusted", Fields: map[string]string{"cool": "true"}}, nil},
		{"missing type", model.Credential{Issuer: "trusted"}, echo_errors.ErrInvalidCredential},
		{"missing issuer", model.Credential{Type: "cool-cert"}, echo_errors.ErrInvalidCredential},
		{"untrusted issuer", model.Credential{Type: "cool-cert", Issuer: "mallory", Fields: map[string]string{"cool": "true"}}, echo_errors.ErrUntrustedIssuer},
		{"unrequested type", model.Credential{Type: "other", Issuer: "trusted"}, echo_errors.ErrInvalidCredential},
		{"field not revealed", model.Credential{Type: "cool-cert", Issuer: "trusted"}, echo_errors.ErrInvalidCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCredential(tt.cred)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFilterCredentials(t *testing.T) {
	v := newValidator()

	accepted, rejected := v.FilterCredentials([]model.Credential{
		{Type: "cool-cert", Issuer: "trusted", Fields: map[string]string{"cool": "true"}, SerialNumber: "1"},
		{Type: "cool-cert", Issuer: "mallory", Fields: map[string]string{"cool": "true"}},
		{Type: "cool-cert", Issuer: "trusted", Fields: map[string]string{"cool": "yes"}, SerialNumber: "2"},
	})

	assert.Len(t, accepted, 2)
	assert.Equal(t, "2", accepted[1].SerialNumber)
	assert.Len(t, rejected, 1)
}
