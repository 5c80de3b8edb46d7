package search

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/sells-group/geobiz/internal/extract"
	"github.com/sells-group/geobiz/internal/model"
)

// recordTemplate is the record shape requested from the model. Normalization
// tolerates any deviation from it.
type recordTemplate struct {
	Name            string           `json:"name" jsonschema_description:"Business name"`
	Industry        string           `json:"industry" jsonschema_description:"Standardized industry, e.g. Hospitality, Technology, Retail, Wellness, Finance, Manufacturing"`
	Activities      []string         `json:"activities" jsonschema_description:"Specific activities the business performs"`
	Rating          float64          `json:"rating" jsonschema:"minimum=1,maximum=5"`
	Address         string           `json:"address"`
	PopularityScore float64          `json:"popularityScore" jsonschema:"minimum=1,maximum=100"`
	Lat             float64          `json:"lat"`
	Lng             float64          `json:"lng"`
	URL             string           `json:"url" jsonschema_description:"Google Maps URL"`
	Phone           string           `json:"phone" jsonschema_description:"Phone number, e.g. +1-555-0199"`
	Website         string           `json:"website"`
	Email           string           `json:"email,omitempty" jsonschema_description:"Contact email if available"`
	ContactPerson   *contactTemplate `json:"contactPerson,omitempty" jsonschema_description:"Official contact person or representative, if publicly listed"`
}

type contactTemplate struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

var recordSchema = sync.OnceValue(func() string {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect([]recordTemplate{})
	schema.Version = ""

	b, err := json.MarshalIndent(schema, "       ", "  ")
	if err != nil {
		return `{"type": "array"}`
	}
	return string(b)
})

// RecordSchema returns the JSON Schema of the record array the model is asked
// to emit.
func RecordSchema() string {
	return recordSchema()
}

func geoContext(geography string) string {
	if g := strings.TrimSpace(geography); g != "" {
		return "specifically in the region of " + g
	}
	return "near the user's current location"
}

// BuildInstruction returns the system instruction for q: the analyst role,
// the task list and the delimited output convention.
func BuildInstruction(q model.Query) string {
	var sb strings.Builder
	sb.WriteString("You are an expert business intelligence analyst.\n")
	fmt.Fprintf(&sb, "Use Google Maps grounding to find real businesses matching the user's query: %q %s.\n\n",
		strings.TrimSpace(q.Text), geoContext(q.Geography))
	sb.WriteString("Your task is to:\n")
	sb.WriteString("1. Identify at least 5-10 relevant businesses if possible.\n")
	sb.WriteString("2. Map them to standardized industries (e.g., 'Hospitality', 'Technology', 'Retail', 'Wellness', 'Finance', 'Manufacturing').\n")
	sb.WriteString("3. Identify multiple specific activities for each company.\n")
	sb.WriteString("4. Provide a structured summary of the market landscape.\n")
	sb.WriteString("5. CONTACT DETAILS: For each company, try to find their phone number, website, and an official contact person or representative if available in public records.\n")
	sb.WriteString("6. DATA OUTPUT: You MUST include a valid JSON array of the businesses found.\n")
	fmt.Fprintf(&sb, "   Wrap the JSON block between the markers %s and %s.\n", extract.StartMarker, extract.EndMarker)
	sb.WriteString("   The array must conform to this JSON Schema:\n       ")
	sb.WriteString(RecordSchema())
	sb.WriteString("\n\nBe extremely precise with the JSON formatting. Use current location data if provided to bias search results.\n")
	return sb.String()
}

// BuildPrompt returns the user content for q.
func BuildPrompt(q model.Query) string {
	area := strings.TrimSpace(q.Geography)
	if area == "" {
		area = "the local area"
	}
	return fmt.Sprintf("Perform a deep market analysis for %q in %q. Find businesses and list their activities, contact info, and key personnel.",
		strings.TrimSpace(q.Text), area)
}
