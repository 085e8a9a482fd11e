// api/service/gatekeeper_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/weathergate/api/audit"
	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/model"
	"github.com/dev-mohitbeniwal/weathergate/api/pdp/dao"
	"github.com/dev-mohitbeniwal/weathergate/api/pdp/engine"
	pdp_model "github.com/dev-mohitbeniwal/weathergate/api/pdp/model"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

const WeatherResource = "/weatherStats"

// CredentialListener is called by the authentication layer once it has
// verified certificates presented by a sender.
type CredentialListener interface {
	OnCredentialsVerified(ctx context.Context, identity string, creds []model.Credential)
}

// IGateKeeperService gates the weather payload behind a required certificate type
type IGateKeeperService interface {
	CredentialListener
	IsAuthorized(identity string) bool
	Evaluate(ctx context.Context, identity string) pdp_model.Outcome
	RequiredType() string
}

// GateKeeperService owns the credential ledger and the weather result cache.
type GateKeeperService struct {
	ledger       *dao.CredentialLedger
	evaluator    *engine.CredentialEvaluator
	cache        *util.ResultCache
	requiredType string
	eventBus     *util.EventBus
	clock        util.Clock
}

// NewGateKeeperService creates a new instance of GateKeeperService
func NewGateKeeperService(
	ledger *dao.CredentialLedger,
	cache *util.ResultCache,
	requiredType string,
	eventBus *util.EventBus,
	clock util.Clock,
) *GateKeeperService {
	if clock == nil {
		clock = util.SystemClock()
	}
	return &GateKeeperService{
		ledger:       ledger,
		evaluator:    engine.NewCredentialEvaluator(ledger),
		cache:        cache,
		requiredType: requiredType,
		eventBus:     eventBus,
		clock:        clock,
	}
}

func (s *GateKeeperService) RequiredType() string {
	return s.requiredType
}

// OnCredentialsVerified records creds for identity.
func (s *GateKeeperService) OnCredentialsVerified(ctx context.Context, identity string, creds []model.Credential) {
	logger.Info("Certificates received",
		zap.String("identity", identity),
		zap.Int("count", len(creds)),
		zap.Strings("types", model.Types(creds)))

	s.ledger.Record(identity, creds)

	if s.eventBus != nil && len(creds) > 0 {
		s.eventBus.Publish(ctx, util.EventCredentialsRecorded, map[string]interface{}{
			"identity": identity,
			"count":    len(creds),
		})
	}
}

func (s *GateKeeperService) IsAuthorized(identity string) bool {
	return s.evaluator.IsAuthorized(identity, s.requiredType)
}

// Evaluate decides the request and, when allowed, loads the payload. The
// returned outcome is the only thing the caller renders.
func (s *GateKeeperService) Evaluate(ctx context.Context, identity string) pdp_model.Outcome {
	request := &pdp_model.AccessRequest{
		Identity:     identity,
		RequiredType: s.requiredType,
		Resource:     WeatherResource,
		Timestamp:    s.clock.Now(),
	}
	decision := s.evaluator.Evaluate(request)

	var outcome pdp_model.Outcome
	if !decision.Allowed() {
		outcome = pdp_model.Denied(decision)
	} else if payload, err := s.cache.Get(ctx); err != nil {
		outcome = pdp_model.Failed(err, decision)
	} else {
		outcome = pdp_model.Served(payload, decision)
	}

	logger.Info("Access evaluated",
		zap.String("identity", identity),
		zap.String("outcome", outcome.Kind.String()),
		zap.String("reason", decision.Reason),
		zap.Int("credentials", decision.CredentialCount))

	s.publishDecision(ctx, request, outcome)
	return outcome
}

func (s *GateKeeperService) publishDecision(ctx context.Context, request *pdp_model.AccessRequest, outcome pdp_model.Outcome) {
	if s.eventBus == nil {
		return
	}
	entry := audit.AuditLog{
		Timestamp:       request.Timestamp,
		Identity:        request.Identity,
		Resource:        request.Resource,
		RequiredType:    request.RequiredType,
		AccessGranted:   outcome.Decision.Allowed(),
		Outcome:         outcome.Kind.String(),
		Reason:          outcome.Decision.Reason,
		CredentialCount: outcome.Decision.CredentialCount,
		MatchedSerial:   outcome.Decision.MatchedSerial,
	}
	if outcome.Err != nil {
		entry.Error = outcome.Err.Error()
	}
	s.eventBus.Publish(ctx, util.EventAccessDecided, entry)
}
