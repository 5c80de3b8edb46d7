// Package view derives presentation-ready groupings and map viewports from
// search results.
package view

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sells-group/geobiz/internal/model"
	"github.com/sells-group/geobiz/internal/normalize"
)

// AllIndustries is the filter key that selects every business.
const AllIndustries = "All"

// IndustryGroup is one industry filter and the businesses it selects.
type IndustryGroup struct {
	Industry   string           `json:"industry"`
	Businesses []model.Business `json:"businesses"`
}

// GroupByIndustry returns the AllIndustries group plus one group per
// industry, ordered by collated filter key. Businesses keep their input
// order within each group. A business without an industry falls under
// normalize.DefaultIndustry.
func GroupByIndustry(businesses []model.Business) []IndustryGroup {
	groups := map[string][]model.Business{
		AllIndustries: append([]model.Business{}, businesses...),
	}
	for _, b := range businesses {
		industry := b.Industry
		if industry == "" {
			industry = normalize.DefaultIndustry
		}
		if industry == AllIndustries {
			continue
		}
		groups[industry] = append(groups[industry], b)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	collate.New(language.English).SortStrings(keys)

	out := make([]IndustryGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, IndustryGroup{Industry: k, Businesses: groups[k]})
	}
	return out
}

// Select returns the businesses of the named group, or an empty slice when
// no such group exists.
func Select(groups []IndustryGroup, industry string) []model.Business {
	for _, g := range groups {
		if g.Industry == industry {
			return g.Businesses
		}
	}
	return []model.Business{}
}
