package records

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-tracker/internal/entities"
)

var testNow = time.Date(2024, time.March, 10, 12, 30, 0, 0, time.UTC)

func toBag(t *testing.T, r entities.ServiceRecord) map[string]any {
	t.Helper()
	data, err := json.Marshal(r)
	require.NoError(t, err)
	var bag map[string]any
	require.NoError(t, json.Unmarshal(data, &bag))
	return bag
}

func TestNormalize_LegacyRecord(t *testing.T) {
	raw := []map[string]any{{
		"id":           "legacy-1",
		"phoneNumber":  "05321234567",
		"description":  "X",
		"feeCollected": float64(100),
		"date":         "2024-01-01",
		"status":       "completed",
	}}

	out := Normalize(raw, testNow)
	require.Len(t, out, 1)
	r := out[0]

	assert.Equal(t, "05321234567", r.CustomerPhone)
	assert.Equal(t, "05321234567", r.PhoneNumber)
	assert.Equal(t, "X", r.Address)
	assert.Equal(t, "X", r.Description)
	assert.Equal(t, float64(100), r.Cost)
	assert.Equal(t, float64(100), r.FeeCollected)
	assert.Equal(t, "2024-01-01", r.CreatedAt)
	assert.Equal(t, "2024-01-01", r.Date)
	assert.Equal(t, FormatTimestamp(testNow), r.UpdatedAt)
	assert.Equal(t, "white", r.Color)
	assert.Equal(t, "", r.PhoneNumberNote)
	assert.Nil(t, r.Order)
}

func TestNormalize_Idempotent(t *testing.T) {
	order := 2
	quoted := 750.5
	canonical := entities.ServiceRecord{
		ID:            "r1",
		CustomerPhone: "05551112233",
		Address:       "Kadıköy, ekran değişimi",
		Color:         "green",
		Cost:          1200,
		Expenses:      300,
		Status:        "workshop",
		CreatedAt:     "2024-02-01T09:00:00.000Z",
		UpdatedAt:     "2024-02-02T09:00:00.000Z",
		Order:         &order,
		Date:          "2024-02-01",
		PhoneNumber:   "05551112233",
		Description:   "Kadıköy, ekran değişimi",
		FeeCollected:  1200,
		PartsChanged:  "ekran",
		QuotedPrice:   &quoted,
	}

	once := Normalize([]map[string]any{toBag(t, canonical)}, testNow)
	require.Len(t, once, 1)
	assert.Equal(t, canonical, once[0])

	twice := Normalize([]map[string]any{toBag(t, once[0])}, testNow.Add(time.Hour))
	assert.Equal(t, once, twice)
}

func TestNormalize_MissingFieldsDefault(t *testing.T) {
	out := Normalize([]map[string]any{{}, nil}, testNow)
	require.Len(t, out, 2)

	for _, r := range out {
		assert.Equal(t, "", r.CustomerPhone)
		assert.Equal(t, "", r.Address)
		assert.Zero(t, r.Cost)
		assert.Zero(t, r.Expenses)
		assert.Equal(t, FormatTimestamp(testNow), r.CreatedAt)
		assert.Equal(t, FormatTimestamp(testNow), r.UpdatedAt)
		assert.Equal(t, "2024-03-10", r.Date)
	}
}

func TestNormalize_Coercion(t *testing.T) {
	out := Normalize([]map[string]any{{
		"id":            float64(42),
		"customerPhone": float64(5321234567),
		"cost":          "250.5",
		"expenses":      "abc",
		"order":         "3",
		"address":       true,
		"description":   "fallback",
	}}, testNow)

	r := out[0]
	assert.Equal(t, "42", r.ID)
	assert.Equal(t, "5321234567", r.CustomerPhone)
	assert.Equal(t, 250.5, r.Cost)
	assert.Zero(t, r.Expenses)
	require.NotNil(t, r.Order)
	assert.Equal(t, 3, *r.Order)
	assert.Equal(t, "fallback", r.Address)
}

func TestNormalize_HugeOrderSaturates(t *testing.T) {
	out := Normalize([]map[string]any{{"id": "a", "order": float64(1e19)}}, testNow)
	require.NotNil(t, out[0].Order)
	assert.Equal(t, math.MaxInt, *out[0].Order)
}

func TestDecodeRecords_Fallbacks(t *testing.T) {
	cases := map[string]string{
		"empty":   "",
		"corrupt": "{not json",
		"null":    "null",
		"object":  `{"services": []}`,
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			out := DecodeRecords([]byte(blob), testNow)
			assert.NotNil(t, out)
			assert.Empty(t, out)
		})
	}
}

func TestDecodeRecords_KeepsNonObjectEntries(t *testing.T) {
	out := DecodeRecords([]byte(`[{"id":"a"}, "junk", 7, {"id":"b"}]`), testNow)
	require.Len(t, out, 4)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "", out[1].ID)
	assert.Equal(t, "b", out[3].ID)
}
