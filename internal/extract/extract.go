// Package extract recovers the structured business payload embedded in a
// provider's free-text answer.
//
// The provider is asked to wrap a JSON array between [DATA_START] and
// [DATA_END]. Models do not always comply, so extraction runs an ordered
// list of strategies and takes the first that matches. Nothing in this
// package returns an error: a missing or broken payload yields no records.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/geobiz/internal/model"
)

// Payload markers the provider is instructed to emit.
const (
	StartMarker = "[DATA_START]"
	EndMarker   = "[DATA_END]"
)

// Strategy isolates a candidate payload from text. ok is false when the
// strategy does not apply.
type Strategy func(text string) (payload string, ok bool)

// DefaultStrategies is the extraction order: explicit markers, then the
// first fenced code block.
var DefaultStrategies = []Strategy{Markers, Fence}

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// Markers returns the text between the first StartMarker and the first
// EndMarker after it. Both markers must be present.
func Markers(text string) (string, bool) {
	if !strings.Contains(text, StartMarker) || !strings.Contains(text, EndMarker) {
		return "", false
	}
	_, after, _ := strings.Cut(text, StartMarker)
	inner, _, _ := strings.Cut(after, EndMarker)
	return strings.TrimSpace(inner), true
}

// Fence returns the interior of the first triple-backtick block, with an
// optional json tag stripped.
func Fence(text string) (string, bool) {
	m := fencePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Payload runs DefaultStrategies over text and returns the first match, or
// "" when no strategy applies.
func Payload(text string) string {
	return PayloadWith(text, DefaultStrategies...)
}

// PayloadWith runs strategies in order, short-circuiting on the first match.
func PayloadWith(text string, strategies ...Strategy) string {
	for _, s := range strategies {
		if p, ok := s(text); ok {
			return p
		}
	}
	return ""
}

// TrimToArray narrows payload to its outermost square brackets. ok is false
// when there is no '[' ... ']' pair.
func TrimToArray(payload string) (string, bool) {
	start := strings.Index(payload, "[")
	end := strings.LastIndex(payload, "]")
	if start < 0 || end < start {
		return "", false
	}
	return payload[start : end+1], true
}

// Records decodes payload into raw records. Malformed input is logged and
// yields an empty, non-nil slice. Array elements that are not objects become
// empty records so every element keeps its position.
func Records(payload string) []model.RawRecord {
	out := []model.RawRecord{}
	if strings.TrimSpace(payload) == "" {
		return out
	}

	arr, ok := TrimToArray(payload)
	if !ok {
		zap.L().Warn("extract: payload has no array", zap.Int("payload_len", len(payload)))
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(arr), &items); err != nil {
		zap.L().Warn("extract: failed to parse payload JSON",
			zap.String("payload", truncate(payload, 512)),
			zap.Error(err),
		)
		return out
	}

	for i, item := range items {
		var rec model.RawRecord
		if err := json.Unmarshal(item, &rec); err != nil || rec == nil {
			zap.L().Debug("extract: non-object element kept as empty record", zap.Int("index", i))
			rec = model.RawRecord{}
		}
		out = append(out, rec)
	}
	return out
}

// Parse is Payload followed by Records.
func Parse(text string) []model.RawRecord {
	return Records(Payload(text))
}

// Narrative returns the prose part of a response: everything before the
// first StartMarker, with the first fenced code block removed, trimmed.
func Narrative(text string) string {
	before, _, _ := strings.Cut(text, StartMarker)
	if loc := fencePattern.FindStringIndex(before); loc != nil {
		before = before[:loc[0]] + before[loc[1]:]
	}
	return strings.TrimSpace(before)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
