package provider

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/sells-group/geobiz/pkg/gemini"
)

// Gemini answers searches with Google Maps grounding.
type Gemini struct {
	client gemini.Client
	model  string
}

// NewGemini wraps a Gemini client. An empty model uses the client default.
func NewGemini(client gemini.Client, model string) *Gemini {
	return &Gemini{client: client, model: model}
}

// Name implements Provider.
func (g *Gemini) Name() string { return "gemini" }

// Generate implements Provider.
func (g *Gemini) Generate(ctx context.Context, req Request) (*Response, error) {
	gReq := gemini.GenerateContentRequest{
		Model:    g.model,
		Contents: []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: req.Prompt}}}},
		Tools:    []gemini.Tool{{GoogleMaps: &gemini.GoogleMaps{}}},
	}
	if req.SystemInstruction != "" {
		gReq.SystemInstruction = &gemini.Content{Parts: []gemini.Part{{Text: req.SystemInstruction}}}
	}
	if req.Location != nil {
		gReq.ToolConfig = &gemini.ToolConfig{RetrievalConfig: &gemini.RetrievalConfig{
			LatLng: &gemini.LatLng{Latitude: req.Location.Lat, Longitude: req.Location.Lng},
		}}
	}

	resp, err := g.client.GenerateContent(ctx, gReq)
	if err != nil {
		pe := &Error{Provider: g.Name(), Err: err}
		var apiErr *gemini.APIError
		if errors.As(err, &apiErr) {
			pe.StatusCode = apiErr.StatusCode
		}
		return nil, pe
	}

	zap.L().Debug("gemini usage",
		zap.String("query_id", req.QueryID),
		zap.String("model_version", resp.ModelVersion),
		zap.Int("prompt_tokens", resp.UsageMetadata.PromptTokenCount),
		zap.Int("candidate_tokens", resp.UsageMetadata.CandidatesTokenCount),
		zap.Int("total_tokens", resp.UsageMetadata.TotalTokenCount),
	)

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		zap.L().Warn("gemini: prompt blocked",
			zap.String("query_id", req.QueryID),
			zap.String("block_reason", resp.PromptFeedback.BlockReason),
			zap.Int("candidates", len(resp.Candidates)),
		)
	}

	out := &Response{Text: resp.Text()}
	if len(resp.Candidates) > 0 {
		out.GroundingChunks = groundingChunks(resp.Candidates[0].GroundingMetadata, req.QueryID)
	}
	return out, nil
}

// groundingChunks pulls groundingChunks out of raw grounding metadata.
// Metadata that does not decode yields no chunks.
func groundingChunks(raw json.RawMessage, queryID string) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var meta struct {
		GroundingChunks []json.RawMessage `json:"groundingChunks"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		zap.L().Warn("gemini: discarding unreadable grounding metadata",
			zap.String("query_id", queryID),
			zap.Error(err),
		)
		return nil
	}
	return meta.GroundingChunks
}
