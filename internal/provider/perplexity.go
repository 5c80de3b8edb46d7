package provider

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/sells-group/geobiz/pkg/perplexity"
)

// Perplexity answers searches with web search grounding. Its sources are
// web pages, not map places.
type Perplexity struct {
	client perplexity.Client
	model  string
}

// NewPerplexity wraps a Perplexity client. An empty model uses the client default.
func NewPerplexity(client perplexity.Client, model string) *Perplexity {
	return &Perplexity{client: client, model: model}
}

// Name implements Provider.
func (p *Perplexity) Name() string { return "perplexity" }

// Generate implements Provider.
func (p *Perplexity) Generate(ctx context.Context, req Request) (*Response, error) {
	var msgs []perplexity.Message
	if req.SystemInstruction != "" {
		msgs = append(msgs, perplexity.Message{Role: "system", Content: req.SystemInstruction})
	}
	msgs = append(msgs, perplexity.Message{Role: "user", Content: req.Prompt})

	pReq := perplexity.ChatCompletionRequest{
		Model:    p.model,
		Messages: msgs,
	}
	if req.Location != nil {
		pReq.WebSearchOptions = &perplexity.WebSearchOptions{
			UserLocation: &perplexity.UserLocation{
				Latitude:  req.Location.Lat,
				Longitude: req.Location.Lng,
			},
		}
	}

	resp, err := p.client.ChatCompletion(ctx, pReq)
	if err != nil {
		pe := &Error{Provider: p.Name(), Err: err}
		var statusErr *perplexity.StatusError
		if errors.As(err, &statusErr) {
			pe.StatusCode = statusErr.StatusCode
		}
		return nil, pe
	}

	zap.L().Debug("perplexity usage",
		zap.String("query_id", req.QueryID),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int("search_results", len(resp.SearchResults)),
	)

	return &Response{Text: resp.Text(), GroundingChunks: webChunks(resp.SearchResults)}, nil
}

type webSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// webChunks renders search results in the grounding chunk shape
// {"web":{"uri":...,"title":...}}.
func webChunks(results []perplexity.SearchResult) []json.RawMessage {
	chunks := make([]json.RawMessage, 0, len(results))
	for _, r := range results {
		b, err := json.Marshal(map[string]webSource{"web": {URI: r.URL, Title: r.Title}})
		if err != nil {
			continue
		}
		chunks = append(chunks, b)
	}
	return chunks
}
