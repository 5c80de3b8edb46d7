package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/geobiz/internal/model"
)

func sampleResponse() *model.SearchResponse {
	pop := 87.0
	return &model.SearchResponse{
		Summary: "Three cafes stand out.",
		Businesses: []model.Business{
			{
				ID:              "biz-0",
				Name:            "Acme Cafe",
				Industry:        "Hospitality",
				Activities:      []string{"coffee", "pastries"},
				Rating:          4.5,
				Address:         "1 Main St",
				Location:        model.LatLng{Lat: 40.7, Lng: -74.0},
				URL:             "https://maps.google.com/?cid=1",
				PopularityScore: &pop,
				Phone:           "+1-555-0199",
				Website:         "acme.example",
				ContactPerson:   &model.ContactPerson{Name: "Jane Roe", Role: "Owner"},
			},
			{
				ID:         "biz-1",
				Name:       "Bean There",
				Industry:   "Other",
				Activities: []string{},
				URL:        "https://www.google.com/maps/search/?api=1&query=Bean%20There%20",
			},
		},
		Analytics: model.AnalyticsSummary{
			IndustryDistribution: []model.IndustryCount{{Name: "Hospitality", Value: 1}, {Name: "Other", Value: 1}},
			RatingDistribution: []model.RatingCount{
				{Rating: "1-2", Count: 1}, {Rating: "2-3", Count: 0}, {Rating: "3-4", Count: 0}, {Rating: "4-5", Count: 1},
			},
			ActivityFrequency: []model.ActivityCount{{Activity: "coffee", Count: 1}, {Activity: "pastries", Count: 1}},
		},
		GroundingLinks: []model.GroundingLink{{Title: "Acme Cafe", URI: "https://maps.google.com/?cid=1"}},
	}
}

func TestWebsiteURL(t *testing.T) {
	assert.Equal(t, "", WebsiteURL(""))
	assert.Equal(t, "https://acme.example", WebsiteURL("acme.example"))
	assert.Equal(t, "http://acme.example", WebsiteURL("http://acme.example"))
	assert.Equal(t, "https://acme.example", WebsiteURL(" https://acme.example "))
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "N/A", FormatRating(0))
	assert.Equal(t, "4.5", FormatRating(4.5))
	assert.Equal(t, "3", FormatRating(3))
}

func TestFormatContact(t *testing.T) {
	assert.Equal(t, "", FormatContact(nil))
	assert.Equal(t, "", FormatContact(&model.ContactPerson{Role: "CEO"}))
	assert.Equal(t, "Jane", FormatContact(&model.ContactPerson{Name: "Jane"}))
	assert.Equal(t, "Jane (CEO)", FormatContact(&model.ContactPerson{Name: "Jane", Role: "CEO"}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "čćžšđ...", truncate("čćžšđčćžšđčćžšđ", 8))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleResponse()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Three cafes stand out.\n"))
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Acme Cafe")
	assert.Contains(t, out, "Jane Roe (Owner)")
	assert.Contains(t, out, "coffee, pastries")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Industries:")
	assert.Contains(t, out, "Top activities:")
	assert.Contains(t, out, "Map view: center 40.700000,-74.000000 zoom 15, 1 markers")
	assert.Contains(t, out, "bounds 40.700000,-74.000000 to 40.700000,-74.000000")
	assert.Contains(t, out, "Verification sources:")
	assert.Contains(t, out, "https://maps.google.com/?cid=1")
}

func TestWriteTable_NoSources(t *testing.T) {
	resp := sampleResponse()
	resp.GroundingLinks = []model.GroundingLink{}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, resp))
	assert.NotContains(t, buf.String(), "Verification sources:")
}

func TestWriteTable_NoLocations(t *testing.T) {
	resp := sampleResponse()
	resp.Businesses = resp.Businesses[1:]

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, resp))
	assert.Contains(t, buf.String(), "Map view: no locations")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleResponse()))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	require.Len(t, f.Sheets, 5)
	assert.Equal(t, SheetBusinesses, f.Sheets[0].Name)
	assert.Equal(t, SheetSources, f.Sheets[4].Name)

	biz := f.Sheet[SheetBusinesses]
	require.Len(t, biz.Rows, 3)
	assert.Equal(t, "ID", biz.Rows[0].Cells[0].String())
	assert.Equal(t, "Contact Name", biz.Rows[0].Cells[12].String())

	first := biz.Rows[1].Cells
	assert.Equal(t, "biz-0", first[0].String())
	assert.Equal(t, "Acme Cafe", first[1].String())
	assert.Equal(t, "coffee, pastries", first[3].String())
	rating, err := first[4].Float()
	require.NoError(t, err)
	assert.InDelta(t, 4.5, rating, 1e-9)
	assert.Equal(t, "https://acme.example", first[10].String())
	assert.Equal(t, "Jane Roe", first[12].String())
	assert.Equal(t, "Owner", first[13].String())

	second := biz.Rows[2].Cells
	assert.Equal(t, "", second[5].String())
	assert.Equal(t, "", second[12].String())

	ratings := f.Sheet[SheetRatings]
	require.Len(t, ratings.Rows, 5)
	assert.Equal(t, "4-5", ratings.Rows[4].Cells[0].String())

	sources := f.Sheet[SheetSources]
	require.Len(t, sources.Rows, 2)
	assert.Equal(t, "https://maps.google.com/?cid=1", sources.Rows[1].Cells[1].String())
}

func TestWriteXLSX_Empty(t *testing.T) {
	resp := &model.SearchResponse{
		Businesses: []model.Business{},
		Summary:    "Analysis complete.",
		Analytics: model.AnalyticsSummary{
			IndustryDistribution: []model.IndustryCount{},
			RatingDistribution:   []model.RatingCount{},
			ActivityFrequency:    []model.ActivityCount{},
		},
		GroundingLinks: []model.GroundingLink{},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, resp))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheet[SheetBusinesses].Rows, 1)
}
