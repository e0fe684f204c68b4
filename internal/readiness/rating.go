package readiness

// Penalty points deducted from the completion percentage before banding.
const (
	expiredPenalty  = 3
	expiringPenalty = 1
)

var bands = []struct {
	min    int
	rating StarRating
}{
	{90, StarRating{Stars: 5, Label: "Very Good"}},
	{75, StarRating{Stars: 4, Label: "Good"}},
	{60, StarRating{Stars: 3, Label: "Generally Satisfactory"}},
	{40, StarRating{Stars: 2, Label: "Improvement Necessary"}},
	{20, StarRating{Stars: 1, Label: "Major Improvement Necessary"}},
}

var urgent = StarRating{Stars: 0, Label: "Urgent Improvement Necessary"}

// Rate maps a completion percentage and the expired/expiring counts to a
// star band.
func Rate(completionPct, expiredCount, expiringCount int) StarRating {
	adjusted := max(0, completionPct-expiredCount*expiredPenalty-expiringCount*expiringPenalty)
	for _, b := range bands {
		if adjusted >= b.min {
			return b.rating
		}
	}
	return urgent
}
