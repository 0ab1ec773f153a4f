package testutil

import (
	"context"

	"github.com/dimitrije/showcase-api/internal/facade"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/dimitrije/showcase-api/internal/remote"
	"github.com/dimitrije/showcase-api/internal/services"
	"github.com/dimitrije/showcase-api/internal/sse"
	"github.com/stretchr/testify/mock"
)

// MockFacade mocks the data access facade
type MockFacade struct {
	mock.Mock
}

func (m *MockFacade) Get(ctx context.Context, resource string) []models.Record {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Record)
}

func (m *MockFacade) Save(ctx context.Context, resource string, records []models.Record) bool {
	args := m.Called(ctx, resource, records)
	return args.Bool(0)
}

func (m *MockFacade) Submit(ctx context.Context, resource string, rec models.Record) facade.SubmitResult {
	args := m.Called(ctx, resource, rec)
	return args.Get(0).(facade.SubmitResult)
}

func (m *MockFacade) Delete(ctx context.Context, resource, id string) error {
	args := m.Called(ctx, resource, id)
	return args.Error(0)
}

func (m *MockFacade) Count(ctx context.Context, resource, field, value string) (int64, bool) {
	args := m.Called(ctx, resource, field, value)
	return args.Get(0).(int64), args.Bool(1)
}

func (m *MockFacade) List(ctx context.Context, resource string, q remote.Query) []models.Record {
	args := m.Called(ctx, resource, q)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Record)
}

func (m *MockFacade) Mode() facade.Mode {
	args := m.Called()
	return args.Get(0).(facade.Mode)
}

func (m *MockFacade) Recheck(ctx context.Context) facade.Mode {
	args := m.Called(ctx)
	return args.Get(0).(facade.Mode)
}

// MockAdminService mocks the AdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Login(email, password string) (*services.Token, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Token), args.Error(1)
}

// MockSSEHub mocks the SSE hub
type MockSSEHub struct {
	mock.Mock
}

func (m *MockSSEHub) Register(client *sse.Client) bool {
	args := m.Called(client)
	return args.Bool(0)
}

func (m *MockSSEHub) Unregister(client *sse.Client) {
	m.Called(client)
}
