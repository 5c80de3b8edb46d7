// Package provider abstracts the generative AI backends that answer a
// business search.
package provider

import (
	"context"
	"encoding/json"

	"github.com/sells-group/geobiz/internal/model"
)

// Provider generates a grounded answer for one search.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Response, error)
}

// Request is a single generation call.
type Request struct {
	SystemInstruction string
	Prompt            string
	// Location biases grounding lookups. Nil means no bias.
	Location *model.LatLng
	// QueryID tags log lines. It is never sent to the provider.
	QueryID string
}

// Response carries the generated text and the provider's grounding chunks.
// Each chunk is the provider's JSON as received.
type Response struct {
	Text            string
	GroundingChunks []json.RawMessage
}
