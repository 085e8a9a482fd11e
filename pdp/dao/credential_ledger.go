// api/pdp/dao/credential_ledger.go
package dao

import (
	"sync"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/model"
)

// CredentialLedger keeps every credential an identity has presented for the
// life of the process. Entries are append-only, never deduplicated and never
// evicted.
type CredentialLedger struct {
	mu      sync.RWMutex
	entries map[string][]model.Credential
}

func NewCredentialLedger() *CredentialLedger {
	return &CredentialLedger{
		entries: make(map[string][]model.Credential),
	}
}

// Record appends creds to the identity's sequence, creating it if absent.
func (l *CredentialLedger) Record(identity string, creds []model.Credential) {
	if len(creds) == 0 {
		return
	}

	l.mu.Lock()
	l.entries[identity] = append(l.entries[identity], creds...)
	total := len(l.entries[identity])
	l.mu.Unlock()

	logger.Debug("Credentials recorded",
		zap.String("identity", identity),
		zap.Int("added", len(creds)),
		zap.Int("total", total))
}

// Lookup returns a copy of the identity's credentials in insertion order.
// Unknown identities yield an empty slice.
func (l *CredentialLedger) Lookup(identity string) []model.Credential {
	l.mu.RLock()
	defer l.mu.RUnlock()

	creds := l.entries[identity]
	out := make([]model.Credential, len(creds))
	copy(out, creds)
	return out
}

// Identities returns the number of identities with at least one credential.
func (l *CredentialLedger) Identities() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
