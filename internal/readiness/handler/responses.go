package handler

import (
	"time"

	"inspectready/internal/catalog"
	"inspectready/internal/readiness"
	"inspectready/pkg/platform/audit"
)

// ReportResponse is the HTTP response for GET /v1/sites/{siteID}/readiness.
type ReportResponse struct {
	ReportID       string             `json:"report_id"`
	SiteID         string             `json:"site_id"`
	CompanyID      string             `json:"company_id"`
	GeneratedAt    time.Time          `json:"generated_at"`
	CatalogVersion string             `json:"catalog_version"`
	Overall        OverallResponse    `json:"overall"`
	Categories     []CategoryResponse `json:"categories"`
	Incidents      IncidentsResponse  `json:"incidents"`
	Partial        bool               `json:"partial"`
	FailedSources  []FailedSource     `json:"failed_sources,omitempty"`
}

// RatingResponse is a star band.
type RatingResponse struct {
	Stars int    `json:"stars"`
	Label string `json:"label"`
}

// OverallResponse is the site-wide summary.
type OverallResponse struct {
	TotalRequirements     int            `json:"total_requirements"`
	CompletedRequirements int            `json:"completed_requirements"`
	CompletionRate        int            `json:"completion_rate"`
	ExpiringCount         int            `json:"expiring_count"`
	ExpiredCount          int            `json:"expired_count"`
	Rating                RatingResponse `json:"rating"`
}

// CategoryResponse summarises one category.
type CategoryResponse struct {
	Category       string               `json:"category"`
	Label          string               `json:"label"`
	Status         string               `json:"status"`
	TotalCount     int                  `json:"total_count"`
	MetCount       int                  `json:"met_count"`
	ExpiringCount  int                  `json:"expiring_count"`
	ExpiredCount   int                  `json:"expired_count"`
	CompletionRate int                  `json:"completion_rate"`
	Rating         RatingResponse       `json:"rating"`
	Requirements   []EvaluationResponse `json:"requirements"`
}

// EvaluationResponse is one requirement's outcome.
type EvaluationResponse struct {
	RequirementID      string     `json:"requirement_id"`
	Name               string     `json:"name"`
	Required           bool       `json:"required"`
	EvidenceType       string     `json:"evidence_type"`
	Status             string     `json:"status"`
	Found              bool       `json:"found"`
	MatchedDescription string     `json:"matched_description,omitempty"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
}

// IncidentsResponse carries the informational incident counters.
type IncidentsResponse struct {
	Total            int `json:"total"`
	RIDDORReportable int `json:"riddor_reportable"`
	RIDDORReported   int `json:"riddor_reported"`
	Last30Days       int `json:"last_30_days"`
}

// FailedSource names an evidence source that could not be loaded.
type FailedSource struct {
	Source   string `json:"source"`
	Category string `json:"category"`
}

// RequirementResponse is one catalog entry.
type RequirementResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Required     bool   `json:"required"`
	EvidenceType string `json:"evidence_type"`
	Frequency    string `json:"frequency,omitempty"`
}

// RequirementsResponse is the HTTP response for GET /v1/requirements.
type RequirementsResponse struct {
	Requirements []RequirementResponse `json:"requirements"`
	Total        int                   `json:"total"`
}

// FromReport converts a domain report to an HTTP response. Source failure
// messages stay in the logs; clients only see which sources failed and why
// in broad terms.
func FromReport(r *readiness.Report) *ReportResponse {
	resp := &ReportResponse{
		ReportID:       r.ID.String(),
		SiteID:         r.SiteID.String(),
		CompanyID:      r.CompanyID.String(),
		GeneratedAt:    r.GeneratedAt,
		CatalogVersion: r.CatalogVersion,
		Overall: OverallResponse{
			TotalRequirements:     r.Overall.TotalRequirements,
			CompletedRequirements: r.Overall.CompletedRequirements,
			CompletionRate:        r.Overall.OverallCompletionRate,
			ExpiringCount:         r.Overall.ExpiringCount,
			ExpiredCount:          r.Overall.ExpiredCount,
			Rating:                fromRating(r.Overall.Rating),
		},
		Categories: make([]CategoryResponse, 0, len(r.Categories)),
		Incidents: IncidentsResponse{
			Total:            r.Incidents.Total,
			RIDDORReportable: r.Incidents.RIDDORReportable,
			RIDDORReported:   r.Incidents.RIDDORReported,
			Last30Days:       r.Incidents.InWindow,
		},
		Partial: r.Partial(),
	}
	for _, c := range r.Categories {
		resp.Categories = append(resp.Categories, fromCategory(c))
	}
	for _, f := range r.FailedSources {
		resp.FailedSources = append(resp.FailedSources, FailedSource{
			Source:   string(f.Source),
			Category: string(f.Category),
		})
	}
	return resp
}

func fromCategory(c readiness.CategorySummary) CategoryResponse {
	out := CategoryResponse{
		Category:       string(c.Category),
		Label:          c.Category.Label(),
		Status:         string(c.Status),
		TotalCount:     c.TotalCount,
		MetCount:       c.MetCount,
		ExpiringCount:  c.ExpiringCount,
		ExpiredCount:   c.ExpiredCount,
		CompletionRate: c.CompletionRate,
		Rating:         fromRating(c.Rating),
		Requirements:   make([]EvaluationResponse, 0, len(c.Requirements)),
	}
	for _, e := range c.Requirements {
		out.Requirements = append(out.Requirements, EvaluationResponse{
			RequirementID:      e.RequirementID,
			Name:               e.Name,
			Required:           e.Required,
			EvidenceType:       string(e.EvidenceType),
			Status:             string(e.Status),
			Found:              e.Found,
			MatchedDescription: e.MatchedDescription,
			ExpiryDate:         e.ExpiryDate,
		})
	}
	return out
}

func fromRating(r readiness.StarRating) RatingResponse {
	return RatingResponse{Stars: r.Stars, Label: r.Label}
}

// FromRequirements converts catalog entries to an HTTP response.
func FromRequirements(reqs []catalog.Requirement) *RequirementsResponse {
	out := &RequirementsResponse{
		Requirements: make([]RequirementResponse, 0, len(reqs)),
		Total:        len(reqs),
	}
	for _, r := range reqs {
		out.Requirements = append(out.Requirements, RequirementResponse{
			ID:           r.ID,
			Name:         r.Name,
			Category:     string(r.Category),
			Required:     r.Required,
			EvidenceType: string(r.EvidenceType),
			Frequency:    r.Frequency,
		})
	}
	return out
}

// HistoryResponse is the HTTP response for GET /v1/sites/{siteID}/readiness/history.
type HistoryResponse struct {
	SiteID  string         `json:"site_id"`
	Entries []HistoryEntry `json:"entries"`
}

// HistoryEntry is one recorded report view, newest first.
type HistoryEntry struct {
	ReportID       string    `json:"report_id"`
	Action         string    `json:"action"`
	RecordedAt     time.Time `json:"recorded_at"`
	CatalogVersion string    `json:"catalog_version,omitempty"`
	CompletionRate int       `json:"completion_rate"`
	Stars          int       `json:"stars"`
	Partial        bool      `json:"partial"`
	FailedSources  []string  `json:"failed_sources,omitempty"`
}

// FromEvent converts an audit event to a history entry.
func FromEvent(e audit.Event) HistoryEntry {
	return HistoryEntry{
		ReportID:       e.ReportID.String(),
		Action:         e.Action,
		RecordedAt:     e.Timestamp,
		CatalogVersion: e.CatalogVersion,
		CompletionRate: e.CompletionRate,
		Stars:          e.Stars,
		Partial:        len(e.FailedSources) > 0,
		FailedSources:  e.FailedSources,
	}
}
