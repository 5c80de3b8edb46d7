//go:build !integration

package main

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sells-group/geobiz/internal/model"
	"github.com/sells-group/geobiz/internal/provider"
	"github.com/sells-group/geobiz/internal/search"
)

// fakeSearcher answers by query text. Queries without an entry get an
// empty response.
type fakeSearcher struct {
	mu      sync.Mutex
	results map[string]*model.SearchResponse
	errs    map[string]error
	seen    []model.Query
}

func (f *fakeSearcher) Search(_ context.Context, q model.Query) (*model.SearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, q)

	if strings.TrimSpace(q.Text) == "" {
		return nil, search.ErrEmptyQuery
	}
	if err, ok := f.errs[q.Text]; ok {
		return nil, err
	}
	if r, ok := f.results[q.Text]; ok {
		return r, nil
	}
	return emptyResponse(), nil
}

func emptyResponse() *model.SearchResponse {
	return &model.SearchResponse{
		Businesses: []model.Business{},
		Summary:    search.DefaultSummary,
		Analytics: model.AnalyticsSummary{
			IndustryDistribution: []model.IndustryCount{},
			RatingDistribution: []model.RatingCount{
				{Rating: "1-2"}, {Rating: "2-3"}, {Rating: "3-4"}, {Rating: "4-5"},
			},
			ActivityFrequency: []model.ActivityCount{},
		},
		GroundingLinks: []model.GroundingLink{},
	}
}

func cafeResponse() *model.SearchResponse {
	r := emptyResponse()
	r.Summary = "One cafe."
	r.Businesses = []model.Business{{
		ID:         "biz-0",
		Name:       "Acme Cafe",
		Industry:   "Hospitality",
		Activities: []string{"coffee"},
		Rating:     4.5,
		Location:   model.LatLng{Lat: 40.7, Lng: -74.0},
		URL:        "https://maps.google.com/?cid=1",
	}}
	r.Analytics.IndustryDistribution = []model.IndustryCount{{Name: "Hospitality", Value: 1}}
	r.Analytics.RatingDistribution[3].Count = 1
	r.Analytics.ActivityFrequency = []model.ActivityCount{{Activity: "coffee", Count: 1}}
	return r
}

func providerErr(status int) error {
	return &provider.Error{Provider: "gemini", StatusCode: status, Err: errors.New("upstream")}
}
