// Package normalize turns loosely-typed provider records into complete
// model.Business values. Every function here is total: missing or mistyped
// fields fall back to defaults and no record is ever dropped.
package normalize

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sells-group/geobiz/internal/model"
)

// DefaultIndustry is assigned when a record carries no usable industry.
const DefaultIndustry = "Other"

const mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

// Records normalizes raws in order. The returned slice is never nil.
func Records(raws []model.RawRecord, fallback *model.LatLng) []model.Business {
	out := make([]model.Business, 0, len(raws))
	for i, raw := range raws {
		out = append(out, Record(raw, i, fallback))
	}
	return out
}

// Record normalizes one raw record. index is the record's position in the
// batch and determines its ID. fallback, when non-nil, supplies coordinates
// the provider left out.
func Record(raw model.RawRecord, index int, fallback *model.LatLng) model.Business {
	name := stringField(raw, "name")
	address := stringField(raw, "address")

	b := model.Business{
		ID:         ID(index),
		Name:       name,
		Industry:   stringField(raw, "industry"),
		Activities: activities(raw["activities"]),
		Address:    address,
		Location:   location(raw, fallback),
		URL:        stringField(raw, "url"),
		Phone:      stringField(raw, "phone"),
		Website:    stringField(raw, "website"),
		Email:      stringField(raw, "email"),
	}

	if b.Industry == "" {
		b.Industry = DefaultIndustry
	}
	if r, ok := toFloat64(raw["rating"]); ok {
		b.Rating = r
	}
	if p, ok := number(raw["popularityScore"]); ok {
		b.PopularityScore = &p
	}
	if b.URL == "" {
		b.URL = MapsSearchURL(name, address)
	}
	b.ContactPerson = contactPerson(raw["contactPerson"])

	return b
}

// ID returns the synthetic identifier for the record at index.
func ID(index int) string {
	return fmt.Sprintf("biz-%d", index)
}

// MapsSearchURL builds a map search link for a business from its name and
// address.
func MapsSearchURL(name, address string) string {
	q := url.QueryEscape(name + " " + address)
	return mapsSearchURL + strings.ReplaceAll(q, "+", "%20")
}

func stringField(raw model.RawRecord, key string) string {
	s, _ := raw[key].(string)
	return s
}

// activities keeps the scalar elements of an array value, numbers and
// booleans in their text form. Nulls and nested values are dropped. A
// non-array value yields an empty slice.
func activities(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch a := item.(type) {
		case string:
			out = append(out, a)
		case float64:
			out = append(out, strconv.FormatFloat(a, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(a))
		}
	}
	return out
}

// location resolves each coordinate independently: the record's own value
// when usable and non-zero, then the fallback, then zero.
func location(raw model.RawRecord, fallback *model.LatLng) model.LatLng {
	var loc model.LatLng
	if fallback != nil {
		loc = *fallback
	}
	if lat, ok := coordinate(raw["lat"]); ok {
		loc.Lat = lat
	}
	if lng, ok := coordinate(raw["lng"]); ok {
		loc.Lng = lng
	}
	return loc
}

func coordinate(v any) (float64, bool) {
	f, ok := number(v)
	if !ok || f == 0 {
		return 0, false
	}
	return f, true
}

// number accepts a JSON number or a numeric string. NaN is rejected.
func number(v any) (float64, bool) {
	f, ok := toFloat64(v)
	if !ok {
		s, isStr := v.(string)
		if !isStr {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if f != f {
		return 0, false
	}
	return f, true
}

func contactPerson(v any) *model.ContactPerson {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	name, _ := m["name"].(string)
	role, _ := m["role"].(string)
	return &model.ContactPerson{Name: name, Role: role}
}

// toFloat64 attempts to convert a decoded JSON value to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
