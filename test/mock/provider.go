// test/mock/provider.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dev-mohitbeniwal/weathergate/api/model"
)

// MockDataProvider is a mock implementation of util.DataProvider
type MockDataProvider struct {
	mock.Mock
}

func (m *MockDataProvider) Fetch(ctx context.Context) (*model.WeatherStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*model.WeatherStats)
	return stats, args.Error(1)
}
