package dto

import (
	"testing"

	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestContactRequest_Record(t *testing.T) {
	req := ContactRequest{
		FirstName:  "Ana",
		LastName:   "Petrović",
		Email:      " ana@example.com ",
		Company:    "  ",
		Message:    "Need a quote",
		Product:    "pump-x200",
		Newsletter: true,
	}

	rec := req.Record()

	assert.Equal(t, models.Record{
		"email":            "ana@example.com",
		"message":          "Need a quote",
		"newsletter":       true,
		"first_name":       "Ana",
		"last_name":        "Petrović",
		"product_interest": "pump-x200",
		"name":             "Ana Petrović",
	}, rec)
}

func TestContactRequest_Record_KeepsBlankMessage(t *testing.T) {
	rec := ContactRequest{Email: "a@b.com"}.Record()

	// required fields are passed through so validation can reject them
	assert.Contains(t, rec, "message")
	assert.NotContains(t, rec, "name")
}

func TestContactRequest_RecordNameIsOneLine(t *testing.T) {
	req := ContactRequest{
		FirstName: "Eve\r\nBcc: victim@example.org",
		LastName:  "Doe\n",
		Email:     "eve@example.com",
		Message:   "hi",
	}

	rec := req.Record()

	assert.Equal(t, "Eve Bcc: victim@example.org Doe", rec["name"])
}
