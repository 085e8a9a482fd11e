// api/model/credential.go
package model

// Credential is a certificate presented by an identity and already verified
// by the authentication collaborator. Values are never mutated after they are
// recorded.
type Credential struct {
	Type               string            `json:"type"`
	SerialNumber       string            `json:"serialNumber,omitempty"`
	Subject            string            `json:"subject,omitempty"`
	Issuer             string            `json:"certifier"`
	RevocationOutpoint string            `json:"revocationOutpoint,omitempty"`
	Fields             map[string]string `json:"fields,omitempty"`
	Signature          string            `json:"signature,omitempty"`
}

// Types returns the credential types in order, mostly for logging.
func Types(creds []Credential) []string {
	types := make([]string, 0, len(creds))
	for _, c := range creds {
		types = append(types, c.Type)
	}
	return types
}
