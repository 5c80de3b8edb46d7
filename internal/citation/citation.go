// Package citation reduces provider grounding metadata to attributable
// map/place links.
package citation

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/sells-group/geobiz/internal/model"
)

// DefaultTitle labels a place link the provider left untitled.
const DefaultTitle = "Business Link"

// chunk is the subset of a grounding chunk this package reads. Other keys
// (web, retrievedContext, ...) are ignored.
type chunk struct {
	Maps *placeRef `json:"maps"`
}

type placeRef struct {
	URI     string `json:"uri"`
	Title   string `json:"title"`
	PlaceID string `json:"placeId"`
}

// Collect keeps the chunks that reference a map/place result, in input
// order. Chunks that fail to decode are dropped. The result is never nil.
func Collect(chunks []json.RawMessage) []model.GroundingLink {
	links := make([]model.GroundingLink, 0, len(chunks))
	for i, raw := range chunks {
		var c chunk
		if err := json.Unmarshal(raw, &c); err != nil {
			zap.L().Debug("citation: skipping undecodable chunk", zap.Int("index", i), zap.Error(err))
			continue
		}
		if c.Maps == nil {
			continue
		}

		link := model.GroundingLink{Title: c.Maps.Title, URI: c.Maps.URI}
		if link.Title == "" {
			link.Title = DefaultTitle
		}
		links = append(links, link)
	}
	return links
}
