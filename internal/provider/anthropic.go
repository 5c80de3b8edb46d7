package provider

import (
	"context"
	"fmt"

	"github.com/sells-group/geobiz/pkg/anthropic"
)

// Anthropic answers searches from the model's own knowledge. It has no map
// grounding, so responses carry no grounding chunks and the location bias
// is stated in the prompt.
type Anthropic struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropic wraps an Anthropic client.
func NewAnthropic(client anthropic.Client, model string, maxTokens int64) *Anthropic {
	return &Anthropic{client: client, model: model, maxTokens: maxTokens}
}

// Name implements Provider.
func (a *Anthropic) Name() string { return "anthropic" }

// Generate implements Provider.
func (a *Anthropic) Generate(ctx context.Context, req Request) (*Response, error) {
	prompt := req.Prompt
	if req.Location != nil {
		prompt += fmt.Sprintf("\n\nThe user is currently at latitude %.6f, longitude %.6f. Prefer businesses near this point.",
			req.Location.Lat, req.Location.Lng)
	}

	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		System:    req.SystemInstruction,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, &Error{Provider: a.Name(), StatusCode: anthropic.StatusCode(err), Err: err}
	}

	resp.Usage.LogCost(a.model, req.QueryID)

	return &Response{Text: resp.Text()}, nil
}
