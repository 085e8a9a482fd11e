package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/weathergate/api/audit"
	"github.com/dev-mohitbeniwal/weathergate/api/test/mock"
	"github.com/dev-mohitbeniwal/weathergate/api/util"
)

func TestSubscribeWritesAccessDecisions(t *testing.T) {
	repo := audit.NewMemoryRepository()
	bus := util.NewEventBus()
	audit.Subscribe(bus, audit.NewService(repo))

	now := time.Now()
	bus.Publish(context.Background(), util.EventAccessDecided, audit.AuditLog{
		Timestamp: now, Identity: "abc", AccessGranted: true, Outcome: "served",
	})
	bus.Publish(context.Background(), util.EventAccessDecided, audit.AuditLog{
		Timestamp: now, Identity: "xyz", Outcome: "denied",
	})
	bus.Wait()

	logs, err := repo.QueryLogs(context.Background(), now.Add(-time.Minute), now.Add(time.Minute), "abc")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].AccessGranted)
	assert.NotEmpty(t, logs[0].ID)

	all, err := repo.QueryLogs(context.Background(), now.Add(-time.Minute), now.Add(time.Minute), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSubscribeSurfacesRepositoryErrors(t *testing.T) {
	svc := new(mock.MockAuditService)
	svc.On("LogAccess", testifymock.Anything, testifymock.Anything).Return(errors.New("es down"))

	bus := util.NewEventBus()
	audit.Subscribe(bus, svc)

	bus.Publish(context.Background(), util.EventAccessDecided, audit.AuditLog{Identity: "abc"})
	bus.Wait()

	svc.AssertNumberOfCalls(t, "LogAccess", 1)
}

func TestMemoryRepositoryTimeRange(t *testing.T) {
	repo := audit.NewMemoryRepository()
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.LogAccess(context.Background(), audit.AuditLog{Timestamp: base.Add(time.Duration(i) * time.Hour), Identity: "abc"}))
	}

	logs, err := repo.QueryLogs(context.Background(), base.Add(time.Hour), base.Add(3*time.Hour), "abc")
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}
