package handlers

import (
	"context"

	"github.com/dimitrije/showcase-api/internal/facade"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/dimitrije/showcase-api/internal/remote"
	"github.com/dimitrije/showcase-api/internal/services"
	"github.com/dimitrije/showcase-api/internal/sse"
)

// FacadeInterface defines the data access methods used by handlers
type FacadeInterface interface {
	Get(ctx context.Context, resource string) []models.Record
	Save(ctx context.Context, resource string, records []models.Record) bool
	Submit(ctx context.Context, resource string, rec models.Record) facade.SubmitResult
	Delete(ctx context.Context, resource, id string) error
	Count(ctx context.Context, resource, field, value string) (int64, bool)
	List(ctx context.Context, resource string, q remote.Query) []models.Record
	Mode() facade.Mode
	Recheck(ctx context.Context) facade.Mode
}

// AdminServiceInterface defines the methods used by handlers from AdminService
type AdminServiceInterface interface {
	Login(email, password string) (*services.Token, error)
}

// SSEHubInterface defines the methods used by handlers from sse.Hub
type SSEHubInterface interface {
	Register(client *sse.Client) bool
	Unregister(client *sse.Client)
}

// Verify that concrete types implement interfaces
var (
	_ FacadeInterface       = (*facade.Facade)(nil)
	_ AdminServiceInterface = (*services.AdminService)(nil)
	_ SSEHubInterface       = (*sse.Hub)(nil)
)
