package model

// Rating bucket labels, in display order.
const (
	RatingBucket1to2 = "1-2"
	RatingBucket2to3 = "2-3"
	RatingBucket3to4 = "3-4"
	RatingBucket4to5 = "4-5"
)

// RatingBuckets lists every rating bucket in display order.
var RatingBuckets = []string{RatingBucket1to2, RatingBucket2to3, RatingBucket3to4, RatingBucket4to5}

// Query is an inbound search request.
type Query struct {
	Text      string  `json:"query" yaml:"query"`
	Geography string  `json:"geography,omitempty" yaml:"geography"`
	Location  *LatLng `json:"location,omitempty" yaml:"location"`
}

// IndustryCount is one entry of the industry distribution.
type IndustryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// RatingCount is one entry of the rating histogram.
type RatingCount struct {
	Rating string `json:"rating"`
	Count  int    `json:"count"`
}

// ActivityCount is one entry of the activity frequency ranking.
type ActivityCount struct {
	Activity string `json:"activity"`
	Count    int    `json:"count"`
}

// AnalyticsSummary holds the derived views over a normalized business list.
type AnalyticsSummary struct {
	IndustryDistribution []IndustryCount `json:"industryDistribution"`
	RatingDistribution   []RatingCount   `json:"ratingDistribution"`
	ActivityFrequency    []ActivityCount `json:"activityFrequency"`
}

// Rating returns the count for the named rating bucket, or 0.
func (a AnalyticsSummary) Rating(bucket string) int {
	for _, r := range a.RatingDistribution {
		if r.Rating == bucket {
			return r.Count
		}
	}
	return 0
}

// GroundingLink is an attributable map/place citation from the provider.
type GroundingLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// SearchResponse is the complete result of one search. Consumers treat it
// as an immutable snapshot.
type SearchResponse struct {
	Businesses     []Business       `json:"businesses"`
	Summary        string           `json:"summary"`
	Analytics      AnalyticsSummary `json:"analytics"`
	GroundingLinks []GroundingLink  `json:"groundingLinks"`
}
