package readiness

import (
	"math"
	"slices"
	"time"

	"inspectready/internal/catalog"
	"inspectready/internal/evidence"
)

// Assemble orders categories for presentation and computes the overall
// summary.
//
// Categories are sorted by completion rate, lowest first; ties keep their
// incoming order. The overall completion rate is the unweighted mean of the
// category rates, so it can differ from CompletedRequirements divided by
// TotalRequirements.
func Assemble(categories []CategorySummary, incidents IncidentCounters) Report {
	sorted := slices.Clone(categories)
	slices.SortStableFunc(sorted, func(a, b CategorySummary) int {
		return a.CompletionRate - b.CompletionRate
	})

	var overall OverallSummary
	rateSum := 0
	for _, c := range sorted {
		overall.TotalRequirements += c.TotalCount
		overall.CompletedRequirements += c.MetCount
		overall.ExpiringCount += c.ExpiringCount
		overall.ExpiredCount += c.ExpiredCount
		rateSum += c.CompletionRate
	}
	if len(sorted) > 0 {
		overall.OverallCompletionRate = int(math.Round(float64(rateSum) / float64(len(sorted))))
	}
	overall.Rating = Rate(overall.OverallCompletionRate, overall.ExpiredCount, overall.ExpiringCount)

	return Report{
		Overall:    overall,
		Categories: sorted,
		Incidents:  incidents,
	}
}

// CountIncidents computes the informational incident counters. An incident
// is in the window when it occurred, or failing that was reported, at or
// after the snapshot's window start.
func CountIncidents(snap *evidence.Snapshot) IncidentCounters {
	var c IncidentCounters
	if snap == nil {
		return c
	}
	for _, i := range snap.Incidents {
		c.Total++
		if i.RIDDORReportable {
			c.RIDDORReportable++
			if i.ReportedDate != nil {
				c.RIDDORReported++
			}
		}
		when := i.OccurredAt
		if when == nil {
			when = i.ReportedDate
		}
		if when != nil && !when.Before(snap.WindowStart) {
			c.InWindow++
		}
	}
	return c
}

// BuildReport runs the whole engine over one snapshot. The returned report
// has no ID or catalog version; callers stamp those.
func BuildReport(reqs []catalog.Requirement, snap *evidence.Snapshot, now time.Time) Report {
	evals := EvaluateAll(reqs, snap, now)
	report := Assemble(Aggregate(evals), CountIncidents(snap))
	report.GeneratedAt = now
	if snap != nil {
		report.SiteID = snap.SiteID
		report.CompanyID = snap.CompanyID
		report.FailedSources = slices.Clone(snap.Failures)
	}
	return report
}
