package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geobiz/internal/model"
)

func TestRecord_EmptyIsTotal(t *testing.T) {
	t.Parallel()

	b := Record(model.RawRecord{}, 0, nil)

	assert.Equal(t, "biz-0", b.ID)
	assert.Equal(t, "", b.Name)
	assert.Equal(t, DefaultIndustry, b.Industry)
	require.NotNil(t, b.Activities)
	assert.Empty(t, b.Activities)
	assert.Equal(t, 0.0, b.Rating)
	assert.Equal(t, model.LatLng{}, b.Location)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=%20", b.URL)
	assert.Nil(t, b.PopularityScore)
	assert.Nil(t, b.ContactPerson)
}

func TestRecord_NilMap(t *testing.T) {
	t.Parallel()

	b := Record(nil, 3, nil)
	assert.Equal(t, "biz-3", b.ID)
	assert.Equal(t, DefaultIndustry, b.Industry)
	assert.NotNil(t, b.Activities)
}

func TestRecord_FullRecord(t *testing.T) {
	t.Parallel()

	raw := model.RawRecord{
		"name":            "Acme Cafe",
		"industry":        "Hospitality",
		"activities":      []any{"coffee", "pastries"},
		"rating":          4.5,
		"address":         "1 Main St",
		"popularityScore": 87.0,
		"lat":             47.6,
		"lng":             -122.3,
		"url":             "https://maps.example/acme",
		"phone":           "+1-555-0199",
		"website":         "https://acme.example",
		"email":           "hi@acme.example",
		"contactPerson":   map[string]any{"name": "Jane Roe", "role": "Owner"},
	}

	b := Record(raw, 2, &model.LatLng{Lat: 1, Lng: 1})

	assert.Equal(t, "biz-2", b.ID)
	assert.Equal(t, "Acme Cafe", b.Name)
	assert.Equal(t, "Hospitality", b.Industry)
	assert.Equal(t, []string{"coffee", "pastries"}, b.Activities)
	assert.InDelta(t, 4.5, b.Rating, 0.0001)
	assert.Equal(t, "1 Main St", b.Address)
	assert.Equal(t, model.LatLng{Lat: 47.6, Lng: -122.3}, b.Location)
	assert.Equal(t, "https://maps.example/acme", b.URL)
	require.NotNil(t, b.PopularityScore)
	assert.InDelta(t, 87.0, *b.PopularityScore, 0.0001)
	assert.Equal(t, "+1-555-0199", b.Phone)
	assert.Equal(t, "https://acme.example", b.Website)
	assert.Equal(t, "hi@acme.example", b.Email)
	require.NotNil(t, b.ContactPerson)
	assert.Equal(t, model.ContactPerson{Name: "Jane Roe", Role: "Owner"}, *b.ContactPerson)
}

func TestRecord_MistypedFieldsDefault(t *testing.T) {
	t.Parallel()

	raw := model.RawRecord{
		"name":          42.0,
		"industry":      "",
		"activities":    "coffee",
		"rating":        "4.5",
		"contactPerson": "Jane",
	}

	b := Record(raw, 0, nil)

	assert.Equal(t, "", b.Name)
	assert.Equal(t, DefaultIndustry, b.Industry)
	assert.Equal(t, []string{}, b.Activities)
	assert.Equal(t, 0.0, b.Rating)
	assert.Nil(t, b.ContactPerson)
}

func TestRecord_ActivitiesKeepScalars(t *testing.T) {
	t.Parallel()

	b := Record(model.RawRecord{"activities": []any{
		"a", 1.0, 2.5, true, nil, map[string]any{"x": "y"}, []any{"z"}, "b",
	}}, 0, nil)
	assert.Equal(t, []string{"a", "1", "2.5", "true", "b"}, b.Activities)
}

func TestRecord_PopularityScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  *float64
	}{
		{"number", 85.0, ptr(85)},
		{"numeric string", "85", ptr(85)},
		{"padded string", " 42.5 ", ptr(42.5)},
		{"zero", 0.0, ptr(0)},
		{"garbage string", "high", nil},
		{"nan string", "NaN", nil},
		{"bool", true, nil},
		{"missing", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := model.RawRecord{}
			if tt.value != nil {
				raw["popularityScore"] = tt.value
			}
			assert.Equal(t, tt.want, Record(raw, 0, nil).PopularityScore)
		})
	}
}

func ptr(f float64) *float64 { return &f }

func TestRecord_Location(t *testing.T) {
	t.Parallel()

	fallback := &model.LatLng{Lat: 51.5, Lng: -0.12}

	tests := []struct {
		name     string
		raw      model.RawRecord
		fallback *model.LatLng
		want     model.LatLng
	}{
		{"own coordinates", model.RawRecord{"lat": 10.0, "lng": 20.0}, fallback, model.LatLng{Lat: 10, Lng: 20}},
		{"missing uses fallback", model.RawRecord{}, fallback, *fallback},
		{"zero uses fallback", model.RawRecord{"lat": 0.0, "lng": 0.0}, fallback, *fallback},
		{"per component", model.RawRecord{"lat": 10.0}, fallback, model.LatLng{Lat: 10, Lng: -0.12}},
		{"numeric strings", model.RawRecord{"lat": "10.5", "lng": " -3 "}, nil, model.LatLng{Lat: 10.5, Lng: -3}},
		{"garbage strings", model.RawRecord{"lat": "north", "lng": true}, fallback, *fallback},
		{"no fallback", model.RawRecord{}, nil, model.LatLng{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Record(tt.raw, 0, tt.fallback).Location)
		})
	}
}

func TestRecord_FallbackNotMutated(t *testing.T) {
	t.Parallel()

	fallback := &model.LatLng{Lat: 1, Lng: 2}
	_ = Record(model.RawRecord{"lat": 9.0}, 0, fallback)
	assert.Equal(t, model.LatLng{Lat: 1, Lng: 2}, *fallback)
}

func TestMapsSearchURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"https://www.google.com/maps/search/?api=1&query=Joe%27s%20Caf%C3%A9%201%20Main%20St%2C%20Paris",
		MapsSearchURL("Joe's Café", "1 Main St, Paris"))
	assert.Equal(t,
		"https://www.google.com/maps/search/?api=1&query=A%26B%20",
		MapsSearchURL("A&B", ""))
}

func TestRecords_PreservesOrderAndAssignsIDs(t *testing.T) {
	t.Parallel()

	raws := []model.RawRecord{{"name": "A"}, {}, {"name": "C"}}
	got := Records(raws, nil)

	require.Len(t, got, 3)
	for i, b := range got {
		assert.Equal(t, ID(i), b.ID)
	}
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "", got[1].Name)
	assert.Equal(t, "C", got[2].Name)
}

func TestRecords_EmptyNotNil(t *testing.T) {
	t.Parallel()

	got := Records(nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
