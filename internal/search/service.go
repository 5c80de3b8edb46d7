// Package search runs one AI-grounded business search end to end: prompt,
// provider call, extraction, normalization and aggregation.
package search

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/geobiz/internal/analytics"
	"github.com/sells-group/geobiz/internal/citation"
	"github.com/sells-group/geobiz/internal/extract"
	"github.com/sells-group/geobiz/internal/model"
	"github.com/sells-group/geobiz/internal/normalize"
	"github.com/sells-group/geobiz/internal/provider"
)

// DefaultSummary is used when the response carries no narrative.
const DefaultSummary = "Analysis complete."

// ErrEmptyQuery is returned when the query text is blank.
var ErrEmptyQuery = errors.New("search: query is empty")

// Service orchestrates searches against a single provider. It holds no
// per-query state and is safe for concurrent use.
type Service struct {
	provider   provider.Provider
	strategies []extract.Strategy
}

// Option configures a Service.
type Option func(*Service)

// WithStrategies replaces the payload extraction strategies. They run in
// the order given.
func WithStrategies(strategies ...extract.Strategy) Option {
	return func(s *Service) {
		s.strategies = strategies
	}
}

// NewService creates a Service backed by p.
func NewService(p provider.Provider, opts ...Option) *Service {
	s := &Service{
		provider:   p,
		strategies: extract.DefaultStrategies,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search runs q. The only errors are ErrEmptyQuery and *provider.Error;
// anything wrong with the content of a successful response degrades to an
// emptier result instead.
func (s *Service) Search(ctx context.Context, q model.Query) (*model.SearchResponse, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, ErrEmptyQuery
	}

	queryID := uuid.New().String()
	log := zap.L().With(
		zap.String("query_id", queryID),
		zap.String("provider", s.provider.Name()),
	)
	log.Info("search: starting",
		zap.String("query", q.Text),
		zap.String("geography", q.Geography),
		zap.Bool("has_location", q.Location != nil),
	)

	resp, err := s.provider.Generate(ctx, provider.Request{
		SystemInstruction: BuildInstruction(q),
		Prompt:            BuildPrompt(q),
		Location:          q.Location,
		QueryID:           queryID,
	})
	if err != nil {
		var pe *provider.Error
		if !errors.As(err, &pe) {
			pe = &provider.Error{Provider: s.provider.Name(), Err: err}
		}
		log.Error("search: provider call failed",
			zap.Int("status", pe.StatusCode),
			zap.Bool("transient", pe.Transient()),
			zap.Error(err),
		)
		return nil, pe
	}
	if resp == nil {
		resp = &provider.Response{}
	}

	raws := extract.Records(extract.PayloadWith(resp.Text, s.strategies...))
	businesses := normalize.Records(raws, q.Location)
	links := citation.Collect(resp.GroundingChunks)

	summary := extract.Narrative(resp.Text)
	if summary == "" {
		summary = DefaultSummary
	}

	out := &model.SearchResponse{
		Businesses:     businesses,
		Summary:        summary,
		Analytics:      analytics.Summarize(businesses),
		GroundingLinks: links,
	}

	log.Info("search: complete",
		zap.Int("businesses", len(businesses)),
		zap.Int("grounding_links", len(links)),
		zap.Int("response_len", len(resp.Text)),
	)
	return out, nil
}
