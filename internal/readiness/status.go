package readiness

import (
	"math"
	"time"
)

// ExpiringWindowDays is how far ahead an expiry date starts to count against
// the rating.
const ExpiringWindowDays = 30

// DeriveStatus classifies a requirement from whether evidence was found and
// its optional expiry date.
//
// Any expiry strictly before now is expired. Otherwise the whole days
// remaining, rounded up, decide between expiring_soon and valid, so an expiry
// exactly 30 days out is valid.
func DeriveStatus(found bool, expiry *time.Time, now time.Time) Status {
	if !found {
		return StatusMissing
	}
	if expiry == nil {
		return StatusValid
	}
	if expiry.Before(now) {
		return StatusExpired
	}
	if daysUntil(*expiry, now) < ExpiringWindowDays {
		return StatusExpiringSoon
	}
	return StatusValid
}

func daysUntil(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}
