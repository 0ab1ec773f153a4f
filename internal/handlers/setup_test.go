package handlers

import (
	"net/http"
	"testing"

	"github.com/dimitrije/showcase-api/internal/middleware"
	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/dimitrije/showcase-api/internal/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"go.uber.org/zap"
)

type testEnv struct {
	client  *testutil.HTTPTestClient
	handler http.Handler
	facade  *testutil.MockFacade
	admin   *testutil.MockAdminService
	hub     *testutil.MockSSEHub
	auth    map[string]string
}

// setupTestApp wires every route against mocks the same way the server does.
func setupTestApp(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		facade: new(testutil.MockFacade),
		admin:  new(testutil.MockAdminService),
		hub:    new(testutil.MockSSEHub),
	}
	realAdmin := testutil.TestAdminService()
	env.auth = map[string]string{
		"Authorization": testutil.AuthHeader(testutil.GenerateTestToken(t, realAdmin)),
	}

	contact := NewContactHandler(env.facade)
	products := NewResourceHandler(env.facade, models.ResourceProducts)
	news := NewResourceHandler(env.facade, models.ResourceNews)
	inquiries := NewInquiryHandler(env.facade)
	stats := NewStatsHandler(env.facade)
	auth := NewAuthHandler(env.admin, zap.NewNop())
	health := NewHealthHandler(env.facade)
	stream := NewEventsHandler(env.hub)

	app := drift.New()
	app.Use(driftmw.BodyParser())

	app.Post("/contact", contact.Submit)
	app.Get("/products", products.List)
	app.Get("/news", news.List)
	app.Post("/admin-login", auth.Login)
	app.Get("/health", health.Health)
	app.Get("/metrics", Metrics())

	admin := app.Group("")
	admin.Use(middleware.AdminAuth(realAdmin))
	admin.Post("/products", products.Create)
	admin.Post("/products/bulk", products.Replace)
	admin.Delete("/products/:id", products.Delete)
	admin.Post("/news", news.Create)
	admin.Delete("/news/:id", news.Delete)
	admin.Get("/inquiries", inquiries.List)
	admin.Get("/stats", stats.Get)
	admin.Get("/events", stream.Stream)

	env.handler = app
	env.client = testutil.NewHTTPTestClient(t, app)
	return env
}

func (e *testEnv) assertExpectations(t *testing.T) {
	e.facade.AssertExpectations(t)
	e.admin.AssertExpectations(t)
	e.hub.AssertExpectations(t)
}
