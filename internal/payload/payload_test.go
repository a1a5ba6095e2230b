package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestFirst(t *testing.T) {
	extractors := []Extractor{Field("shipment_id"), Field("shipmentId"), Field("data.id")}

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"snake case", `{"shipment_id":"S-1","data":{"id":"S-2"}}`, "S-1"},
		{"camel case", `{"shipmentId":"S-3"}`, "S-3"},
		{"nested numeric id", `{"data":{"id":12345}}`, "12345"},
		{"empty value falls through", `{"shipment_id":"","data":{"id":"S-4"}}`, "S-4"},
		{"nothing matches", `{"data":"flat"}`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, First(decode(t, tc.doc), extractors...))
		})
	}
}

func TestString(t *testing.T) {
	s, ok := String(12.5)
	assert.True(t, ok)
	assert.Equal(t, "12.5", s)

	_, ok = String([]any{"x"})
	assert.False(t, ok)
}
