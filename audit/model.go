// api/audit/model.go
package audit

import (
	"time"
)

// AuditLog records one access decision for GET /weatherStats
type AuditLog struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Identity        string    `json:"identity"`
	Resource        string    `json:"resource"`
	RequiredType    string    `json:"required_type"`
	AccessGranted   bool      `json:"access_granted"`
	Outcome         string    `json:"outcome"`
	Reason          string    `json:"reason,omitempty"`
	CredentialCount int       `json:"credential_count"`
	MatchedSerial   string    `json:"matched_serial,omitempty"`
	Error           string    `json:"error,omitempty"`
}
