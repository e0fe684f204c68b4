package readiness

import (
	"math"

	"inspectready/internal/catalog"
)

// Aggregate groups evaluations by category, in order of first appearance.
func Aggregate(evals []Evaluation) []CategorySummary {
	index := make(map[catalog.Category]int)
	var out []CategorySummary
	for _, e := range evals {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategorySummary{Category: e.Category})
		}
		out[i].Requirements = append(out[i].Requirements, e)
	}
	for i := range out {
		summarize(&out[i])
	}
	return out
}

func summarize(c *CategorySummary) {
	c.TotalCount = len(c.Requirements)
	c.MetCount, c.ExpiringCount, c.ExpiredCount = 0, 0, 0
	for _, e := range c.Requirements {
		if e.Met() {
			c.MetCount++
		}
		switch e.Status {
		case StatusExpiringSoon:
			c.ExpiringCount++
		case StatusExpired:
			c.ExpiredCount++
		}
	}
	c.CompletionRate = completionRate(c.MetCount, c.TotalCount)
	c.Status = categoryStatus(c.CompletionRate)
	c.Rating = Rate(c.CompletionRate, c.ExpiredCount, c.ExpiringCount)
}

func completionRate(met, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(met) / float64(total)))
}

func categoryStatus(rate int) CategoryStatus {
	switch {
	case rate >= 100:
		return CategoryComplete
	case rate <= 0:
		return CategoryMissing
	default:
		return CategoryPartial
	}
}
