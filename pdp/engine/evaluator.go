// api/pdp/engine/evaluator.go
package engine

import (
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/model"
	pdp_model "github.com/dev-mohitbeniwal/weathergate/api/pdp/model"
)

// CredentialSource is the read side of the credential ledger
type CredentialSource interface {
	Lookup(identity string) []model.Credential
}

// CredentialEvaluator decides access from the credentials an identity has
// presented. Decisions are never cached so a freshly recorded credential is
// visible to the next request.
type CredentialEvaluator struct {
	source CredentialSource
}

func NewCredentialEvaluator(source CredentialSource) *CredentialEvaluator {
	return &CredentialEvaluator{source: source}
}

// IsAuthorized reports whether identity holds at least one credential of requiredType.
func (ce *CredentialEvaluator) IsAuthorized(identity, requiredType string) bool {
	return ce.Evaluate(&pdp_model.AccessRequest{Identity: identity, RequiredType: requiredType}).Allowed()
}

func (ce *CredentialEvaluator) Evaluate(request *pdp_model.AccessRequest) pdp_model.AccessDecision {
	if request.Identity == "" {
		return pdp_model.AccessDecision{
			Effect: pdp_model.EffectDeny,
			Reason: "No identity presented",
		}
	}

	creds := ce.source.Lookup(request.Identity)
	if len(creds) == 0 {
		return pdp_model.AccessDecision{
			Effect: pdp_model.EffectDeny,
			Reason: "No credentials recorded for identity",
		}
	}

	for _, c := range creds {
		if c.Type == request.RequiredType {
			logger.Debug("Required credential found",
				zap.String("identity", request.Identity),
				zap.String("type", request.RequiredType),
				zap.String("serial", c.SerialNumber))
			return pdp_model.AccessDecision{
				Effect:          pdp_model.EffectAllow,
				Reason:          "Required credential presented",
				CredentialCount: len(creds),
				MatchedSerial:   c.SerialNumber,
			}
		}
	}

	return pdp_model.AccessDecision{
		Effect:          pdp_model.EffectDeny,
		Reason:          "Required credential type not presented",
		CredentialCount: len(creds),
	}
}
