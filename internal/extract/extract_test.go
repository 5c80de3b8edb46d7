package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geobiz/internal/model"
)

func TestMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"surrounded by prose", `Intro. [DATA_START] [{"a":1}] [DATA_END] Outro.`, `[{"a":1}]`, true},
		{"first occurrence wins", `[DATA_START]one[DATA_END][DATA_START]two[DATA_END]`, "one", true},
		{"multiline", "x\n[DATA_START]\n[\n{}\n]\n[DATA_END]\n", "[\n{}\n]", true},
		{"start only", `[DATA_START] [1]`, "", false},
		{"end only", `[1] [DATA_END]`, "", false},
		{"none", `plain text`, "", false},
		{"empty between", `[DATA_START][DATA_END]`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Markers(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"json tag", "Here:\n```json\n[{\"name\":\"X\"}]\n```\nDone", `[{"name":"X"}]`, true},
		{"no tag", "```\n[1,2]\n```", "[1,2]", true},
		{"inline", "```json [{\"name\":\"X\",\"rating\":1}] ```", `[{"name":"X","rating":1}]`, true},
		{"first block wins", "```a```\n```b```", "a", true},
		{"unterminated", "```json [1]", "", false},
		{"none", "nothing here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Fence(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPayload_MarkersBeatFence(t *testing.T) {
	t.Parallel()

	text := "```json\n[\"fenced\"]\n```\n[DATA_START][\"marked\"][DATA_END]"
	assert.Equal(t, `["marked"]`, Payload(text))
}

func TestPayload_NoMatchIsEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", Payload("No results found."))
}

func TestPayloadWith_ShortCircuits(t *testing.T) {
	t.Parallel()

	calls := 0
	never := func(string) (string, bool) {
		calls++
		return "", false
	}
	always := func(string) (string, bool) { return "hit", true }

	assert.Equal(t, "hit", PayloadWith("x", never, always, never))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "", PayloadWith("x"))
}

func TestTrimToArray(t *testing.T) {
	t.Parallel()

	got, ok := TrimToArray(`Here is the data: [{"a":[1]}] thanks`)
	require.True(t, ok)
	assert.Equal(t, `[{"a":[1]}]`, got)

	_, ok = TrimToArray(`{"a":1}`)
	assert.False(t, ok)

	_, ok = TrimToArray(`] backwards [`)
	assert.False(t, ok)
}

func TestRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    []model.RawRecord
	}{
		{"valid", `[{"name":"A"},{"name":"B"}]`, []model.RawRecord{{"name": "A"}, {"name": "B"}}},
		{"prose inside markers", `Sure! [{"name":"A"}] Hope this helps.`, []model.RawRecord{{"name": "A"}}},
		{"empty", "", []model.RawRecord{}},
		{"malformed", `[{"name": "A",}]`, []model.RawRecord{}},
		{"truncated", `[{"name": "A"`, []model.RawRecord{}},
		{"object not array", `{"name":"A"}`, []model.RawRecord{}},
		{"non-object elements kept empty", `[1, "x", null, {"name":"A"}]`, []model.RawRecord{{}, {}, {}, {"name": "A"}}},
		{"empty array", `[]`, []model.RawRecord{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Records(tt.payload)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_FencedFallback(t *testing.T) {
	t.Parallel()

	got := Parse("Results:\n```json [{\"name\":\"X\",\"rating\":1}] ```")
	require.Len(t, got, 1)
	assert.Equal(t, "X", got[0]["name"])
	assert.Equal(t, 1.0, got[0]["rating"])
}

func TestNarrative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"marker span removed", `Market is growing. [DATA_START][{"name":"Acme"}][DATA_END]`, "Market is growing."},
		{"text after payload dropped", "Intro.\n[DATA_START][][DATA_END]\nTrailing notes.", "Intro."},
		{"fence removed", "Summary here.\n```json\n[1]\n```\nMore.", "Summary here.\n\nMore."},
		{"only first fence removed", "a ```x``` b ```y``` c", "a  b ```y``` c"},
		{"plain", "  No results found.  ", "No results found."},
		{"payload only", `[DATA_START][][DATA_END]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Narrative(tt.text))
		})
	}
}
