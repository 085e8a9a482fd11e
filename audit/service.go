// api/audit/service.go
package audit

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/weathergate/api/logging"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

type Service interface {
	LogAccess(ctx context.Context, log AuditLog) error
	QueryLogs(ctx context.Context, from, to time.Time, identity string) ([]AuditLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogAccess(ctx context.Context, log AuditLog) error {
	return s.repo.LogAccess(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, identity string) ([]AuditLog, error) {
	return s.repo.QueryLogs(ctx, from, to, identity)
}

// Subscribe writes every access.decided event published on bus to svc.
func Subscribe(bus *util.EventBus, svc Service) {
	bus.Subscribe(util.EventAccessDecided, func(ctx context.Context, event util.Event) error {
		entry, ok := event.Payload.(AuditLog)
		if !ok {
			return fmt.Errorf("invalid audit payload type: %T", event.Payload)
		}
		if err := svc.LogAccess(ctx, entry); err != nil {
			logger.Warn("Failed to write audit log",
				zap.Error(err),
				zap.String("identity", entry.Identity),
				zap.String("outcome", entry.Outcome))
			return err
		}
		return nil
	})

	bus.Subscribe(util.EventCredentialsRecorded, func(_ context.Context, event util.Event) error {
		logger.Debug("Credentials recorded", zap.Any("event", event.Payload))
		return nil
	})
}
