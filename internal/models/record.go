package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Resource names. Each one maps to a table on the remote backend and a key
// in the local fallback store.
const (
	ResourceProducts  = "products"
	ResourceNews      = "news"
	ResourceInquiries = "inquiries"
	ResourceUsers     = "users"
)

// Inquiry lifecycle statuses
const (
	InquiryStatusNew      = "new"
	InquiryStatusRead     = "read"
	InquiryStatusReplied  = "replied"
	InquiryStatusArchived = "archived"
)

const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldStatus    = "status"
	FieldEmail     = "email"
)

var Resources = []string{
	ResourceProducts,
	ResourceNews,
	ResourceInquiries,
	ResourceUsers,
}

func IsResource(name string) bool {
	for _, r := range Resources {
		if r == name {
			return true
		}
	}
	return false
}

// Record is one entity instance as a flat field mapping.
type Record map[string]any

// ID returns the record identifier formatted as text, or "" when unset.
func (r Record) ID() string {
	return r.String(FieldID)
}

// String returns the field formatted as text. Missing and nil fields give "".
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// IsBlank reports whether the field is missing, nil or a whitespace-only string.
func (r Record) IsBlank(field string) bool {
	v, ok := r[field]
	if !ok || v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Clone returns a shallow copy. Field values are primitives so this is enough
// to isolate callers from each other.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
