package handlers

import (
	"net/http"
	"testing"

	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/dimitrije/showcase-api/internal/remote"
	"github.com/dimitrije/showcase-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestInquiryHandler_List(t *testing.T) {
	env := setupTestApp(t)

	env.facade.On("List", mock.Anything, models.ResourceInquiries, remote.Query{
		OrderBy: "created_at",
		Desc:    true,
	}).Return([]models.Record{{"id": "i1"}})

	rec := env.client.GET("/inquiries", env.auth)

	testutil.AssertStatus(t, rec, http.StatusOK)
	assert.Len(t, testutil.ParseEnvelope(t, rec).Data, 1)
	env.assertExpectations(t)
}

func TestInquiryHandler_List_StatusAndLimit(t *testing.T) {
	env := setupTestApp(t)

	env.facade.On("List", mock.Anything, models.ResourceInquiries, remote.Query{
		Field:   "status",
		Value:   "new",
		OrderBy: "created_at",
		Desc:    true,
		Limit:   5,
	}).Return([]models.Record{})

	rec := env.client.GET("/inquiries?status=new&limit=5", env.auth)

	testutil.AssertStatus(t, rec, http.StatusOK)
	env.assertExpectations(t)
}

func TestInquiryHandler_List_BadQuery(t *testing.T) {
	env := setupTestApp(t)

	for _, path := range []string{
		"/inquiries?status=spam",
		"/inquiries?limit=0",
		"/inquiries?limit=ten",
	} {
		rec := env.client.GET(path, env.auth)
		testutil.AssertStatus(t, rec, http.StatusBadRequest)
	}
	env.facade.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestInquiryHandler_List_RequiresAdmin(t *testing.T) {
	env := setupTestApp(t)

	rec := env.client.GET("/inquiries", nil)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}
