package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsResource(t *testing.T) {
	assert.True(t, IsResource("products"))
	assert.True(t, IsResource("inquiries"))
	assert.False(t, IsResource("orders"))
	assert.False(t, IsResource(""))
}

func TestRecord_ID(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{"string", Record{"id": "2c1f"}, "2c1f"},
		{"json float", Record{"id": float64(1)}, "1"},
		{"int", Record{"id": 42}, "42"},
		{"json number", Record{"id": json.Number("7")}, "7"},
		{"missing", Record{}, ""},
		{"nil", Record{"id": nil}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.ID())
		})
	}
}

func TestRecord_IsBlank(t *testing.T) {
	r := Record{"a": "x", "b": "   ", "c": "", "d": nil, "e": false, "f": 0}

	assert.False(t, r.IsBlank("a"))
	assert.True(t, r.IsBlank("b"))
	assert.True(t, r.IsBlank("c"))
	assert.True(t, r.IsBlank("d"))
	assert.False(t, r.IsBlank("e"))
	assert.False(t, r.IsBlank("f"))
	assert.True(t, r.IsBlank("missing"))
}

func TestRecord_Clone_IsIndependent(t *testing.T) {
	orig := Record{"name": "Pump"}
	clone := orig.Clone()
	clone["name"] = "Valve"

	assert.Equal(t, "Pump", orig["name"])
	assert.Nil(t, Record(nil).Clone())
}

func TestCloneRecords(t *testing.T) {
	orig := []Record{{"id": 1}}
	clone := CloneRecords(orig)
	clone[0]["id"] = 2

	assert.Equal(t, 1, orig[0]["id"])
	assert.Nil(t, CloneRecords(nil))
}
