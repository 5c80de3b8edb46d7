package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingBucketOrder(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"1-2", "2-3", "3-4", "4-5"}, RatingBuckets)
}

func TestAnalyticsSummary_Rating(t *testing.T) {
	t.Parallel()

	a := AnalyticsSummary{
		RatingDistribution: []RatingCount{
			{Rating: RatingBucket1to2, Count: 1},
			{Rating: RatingBucket4to5, Count: 3},
		},
	}
	assert.Equal(t, 1, a.Rating("1-2"))
	assert.Equal(t, 3, a.Rating("4-5"))
	assert.Equal(t, 0, a.Rating("2-3"))
	assert.Equal(t, 0, a.Rating("nope"))
}

func TestLatLng_IsZero(t *testing.T) {
	t.Parallel()
	assert.True(t, LatLng{}.IsZero())
	assert.False(t, LatLng{Lat: 1}.IsZero())
	assert.False(t, LatLng{Lng: -1}.IsZero())
}

func TestBusinessJSON_OmitsAbsentOptionalFields(t *testing.T) {
	t.Parallel()

	b := Business{
		ID:         "biz-0",
		Name:       "Acme Cafe",
		Industry:   "Hospitality",
		Activities: []string{},
		Location:   LatLng{Lat: 1, Lng: 2},
	}
	data, err := json.Marshal(b)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "biz-0", m["id"])
	assert.Equal(t, []any{}, m["activities"])
	assert.NotContains(t, m, "popularityScore")
	assert.NotContains(t, m, "contactPerson")
	assert.NotContains(t, m, "phone")
	assert.Contains(t, m, "address")
	assert.Contains(t, m, "url")
}
