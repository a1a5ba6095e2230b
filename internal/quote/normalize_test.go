package quote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &doc))
	return doc
}

func TestNormalize_Options(t *testing.T) {
	body := decode(t, `{"options":[
		{"id":"b","name":"Express","price":5200,"eta":"24h","tags":["fast"]},
		{"id":"a","name":"Standard","price":"3100.40","tags":["cheapest"]},
		{"id":"c","name":"Unpriced"},
		{"id":"d","name":"Also cheapest","price":3100,"tags":["CHEAPEST"]}
	]}`)

	options := Normalize(body)
	require.Len(t, options, 3)

	assert.Equal(t, []string{"b", "a", "d"}, []string{options[0].ID, options[1].ID, options[2].ID})
	assert.Equal(t, int64(3100), options[1].Price)
	assert.True(t, options[1].HasTag(TagCheapest))
	assert.False(t, options[2].HasTag(TagCheapest))

	selected, ok := Select(options)
	require.True(t, ok)
	assert.Equal(t, "a", selected.ID)
}

func TestNormalize_AllResults(t *testing.T) {
	body := decode(t, `{"all_results":[
		{"carrier_id":"oca","service_id":"std","carrier_name":"OCA","service_name":"Standard","total_price":4100,"selectable":true},
		{"carrier_id":"andreani","service_id":"exp","final_price":"2999.6","tags":["fast"]},
		{"carrier_id":"hidden","service_id":"x","price":10,"selectable":false},
		{"carrier_id":"rate","service_id":"r","rate":{"price":3500}},
		{"carrier_id":"free","service_id":"f","price":0,"cost":900},
		{"carrier_id":"none","service_id":"n"}
	]}`)

	options := Normalize(body)
	ids := make([]string, 0, len(options))
	for _, o := range options {
		ids = append(ids, o.ID)
	}

	assert.Equal(t, []string{"andreani_exp", "rate_r", "oca_std"}, ids)
	assert.Equal(t, int64(3000), options[0].Price)
	assert.Equal(t, "OCA Standard", options[2].Name)
	assert.NotContains(t, ids, "hidden_x")
}

func TestNormalize_PriceFieldPriority(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		price int64
		ok    bool
	}{
		{"price first", `{"price":100,"total_price":200}`, 100, true},
		{"total_price before amount", `{"total_price":200,"amount":300}`, 200, true},
		{"nested rate price", `{"rate":{"price":"450.5"}}`, 451, true},
		{"cost last", `{"cost":700}`, 700, true},
		{"zero is present but not positive", `{"price":0,"cost":700}`, 0, false},
		{"unparseable is skipped", `{"price":"n/a","amount":50}`, 50, true},
		{"nothing", `{}`, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			price, ok := extractPrice(decode(t, tc.body))
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.price, price)
			}
		})
	}
}

func TestNormalize_UnknownShape(t *testing.T) {
	assert.Empty(t, Normalize(decode(t, `{"results":[{"price":1}]}`)))

	_, ok := Select(nil)
	assert.False(t, ok)
}
