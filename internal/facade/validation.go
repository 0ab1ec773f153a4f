package facade

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/showcase-api/internal/models"
)

var ErrValidation = errors.New("validation failed")

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Rule describes what Submit requires and fills in for one resource.
type Rule struct {
	Required []string
	// Defaults are applied to fields the caller left blank.
	Defaults map[string]any
	// RetrySubmit grants a failed remote insert one extra direct attempt.
	RetrySubmit bool
}

// DefaultRules are the submission rules used by the site.
func DefaultRules() map[string]Rule {
	return map[string]Rule{
		models.ResourceProducts: {
			Required: []string{"name"},
		},
		models.ResourceNews: {
			Required: []string{"title"},
		},
		models.ResourceInquiries: {
			Required:    []string{"email", "message"},
			Defaults:    map[string]any{models.FieldStatus: models.InquiryStatusNew},
			RetrySubmit: true,
		},
		models.ResourceUsers: {
			Required: []string{"email"},
		},
	}
}

// Validate checks required fields and, when an email is present, its syntax.
func (r Rule) Validate(rec models.Record) error {
	for _, field := range r.Required {
		if rec.IsBlank(field) {
			return &ValidationError{Field: field, Reason: "is required"}
		}
	}
	if !rec.IsBlank(models.FieldEmail) && !ValidEmail(rec.String(models.FieldEmail)) {
		return &ValidationError{Field: models.FieldEmail, Reason: "is not a valid email address"}
	}
	return nil
}

// ValidEmail accepts local@domain where the domain has at least two
// non-empty dot-separated labels and nothing contains whitespace.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	labels := strings.Split(s[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" {
			return false
		}
	}
	return true
}
