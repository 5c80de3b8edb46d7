// Package analytics derives summary statistics from normalized businesses.
package analytics

import (
	"sort"

	"github.com/sells-group/geobiz/internal/model"
)

// TopActivities caps the activity frequency ranking.
const TopActivities = 10

// Summarize builds the industry distribution, rating histogram and activity
// ranking for businesses in one pass plus a sort over distinct activities.
func Summarize(businesses []model.Business) model.AnalyticsSummary {
	industries := newCounter()
	activities := newCounter()
	ratings := make(map[string]int, len(model.RatingBuckets))

	for _, b := range businesses {
		industries.add(b.Industry)
		for _, a := range b.Activities {
			activities.add(a)
		}
		ratings[RatingBucket(b.Rating)]++
	}

	summary := model.AnalyticsSummary{
		IndustryDistribution: make([]model.IndustryCount, 0, len(industries.order)),
		RatingDistribution:   make([]model.RatingCount, 0, len(model.RatingBuckets)),
		ActivityFrequency:    make([]model.ActivityCount, 0, TopActivities),
	}

	for _, name := range industries.order {
		summary.IndustryDistribution = append(summary.IndustryDistribution, model.IndustryCount{
			Name:  name,
			Value: industries.counts[name],
		})
	}

	for _, bucket := range model.RatingBuckets {
		summary.RatingDistribution = append(summary.RatingDistribution, model.RatingCount{
			Rating: bucket,
			Count:  ratings[bucket],
		})
	}

	ranked := activities.order
	sort.SliceStable(ranked, func(i, j int) bool {
		return activities.counts[ranked[i]] > activities.counts[ranked[j]]
	})
	if len(ranked) > TopActivities {
		ranked = ranked[:TopActivities]
	}
	for _, a := range ranked {
		summary.ActivityFrequency = append(summary.ActivityFrequency, model.ActivityCount{
			Activity: a,
			Count:    activities.counts[a],
		})
	}

	return summary
}

// RatingBucket maps a rating to its histogram bucket. The comparisons run
// top-down, so boundary values belong to the higher bucket and anything
// below 2 (including zero, negatives and NaN) lands in "1-2".
func RatingBucket(rating float64) string {
	switch {
	case rating >= 4:
		return model.RatingBucket4to5
	case rating >= 3:
		return model.RatingBucket3to4
	case rating >= 2:
		return model.RatingBucket2to3
	default:
		return model.RatingBucket1to2
	}
}

// counter tallies keys and remembers first-seen order.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}
