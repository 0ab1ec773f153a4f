package dto

import (
	"strings"

	"github.com/dimitrije/showcase-api/internal/models"
)

// ContactRequest is the public contact form.
type ContactRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	Product    string `json:"product"`
	Country    string `json:"country"`
	Newsletter bool   `json:"newsletter"`
}

// Record maps the form onto an inquiry. Empty optional fields are left out;
// the selected product is stored as product_interest.
func (r ContactRequest) Record() models.Record {
	rec := models.Record{
		"email":      strings.TrimSpace(r.Email),
		"message":    r.Message,
		"newsletter": r.Newsletter,
	}
	optional := map[string]string{
		"first_name":       r.FirstName,
		"last_name":        r.LastName,
		"phone":            r.Phone,
		"company":          r.Company,
		"subject":          r.Subject,
		"product_interest": r.Product,
		"country":          r.Country,
	}
	for field, value := range optional {
		if v := strings.TrimSpace(value); v != "" {
			rec[field] = v
		}
	}
	// one line, whatever whitespace the form sent
	if name := strings.Join(strings.Fields(r.FirstName+" "+r.LastName), " "); name != "" {
		rec["name"] = name
	}
	return rec
}
