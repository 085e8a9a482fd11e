// api/pdp/model/decision.go
package model

const (
	EffectAllow = "allow"
	EffectDeny  = "deny"
)

type AccessDecision struct {
	Effect          string `json:"effect"`
	Reason          string `json:"reason,omitempty"`
	CredentialCount int    `json:"credential_count"`
	// MatchedSerial is the serial number of the first matching credential, if any.
	MatchedSerial string `json:"matched_serial,omitempty"`
}

func (d AccessDecision) Allowed() bool {
	return d.Effect == EffectAllow
}
