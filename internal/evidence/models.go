package evidence

import (
	"time"

	id "inspectready/pkg/domain"
)

// Source names one evidence collection in a snapshot.
type Source string

const (
	SourceDocuments       Source = "documents"
	SourceCOSHH           Source = "coshh"
	SourceAssessments     Source = "risk_assessments"
	SourceTraining        Source = "training"
	SourceAppliances      Source = "pat_equipment"
	SourceTemplates       Source = "task_templates"
	SourceCompletions     Source = "task_completions"
	SourceTemperatureLogs Source = "temperature_logs"
	SourceIncidents       Source = "incidents"
)

// AllSources lists every source the loader fetches, in report order.
func AllSources() []Source {
	return []Source{
		SourceDocuments, SourceCOSHH, SourceAssessments, SourceTraining, SourceAppliances,
		SourceTemplates, SourceCompletions, SourceTemperatureLogs, SourceIncidents,
	}
}

// Document is an active company document.
type Document struct {
	Name       string     `json:"name"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	IsActive   bool       `json:"is_active"`
}

// COSHHSheet is an active hazardous-substance data sheet.
type COSHHSheet struct {
	ProductName string     `json:"product_name"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
}

// Assessment is a published risk assessment.
type Assessment struct {
	TemplateType   string     `json:"template_type"`
	Title          string     `json:"title"`
	NextReviewDate *time.Time `json:"next_review_date,omitempty"`
}

// TrainingStatus is the booking state of a training record.
type TrainingStatus string

const (
	TrainingBooked    TrainingStatus = "booked"
	TrainingCompleted TrainingStatus = "completed"
	TrainingCancelled TrainingStatus = "cancelled"
)

// TrainingRecord is a staff training booking at a site.
type TrainingRecord struct {
	Course string         `json:"course"`
	Status TrainingStatus `json:"status"`
}

// Appliance is a PAT register entry.
type Appliance struct {
	ID                  string       `json:"id"`
	SiteID              id.SiteID    `json:"site_id"`
	CompanyID           id.CompanyID `json:"company_id"`
	HasCurrentTestLabel bool         `json:"has_current_test_label"`
}

// TaskTemplate is an active checklist template.
type TaskTemplate struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// TaskCompletion is one executed checklist.
type TaskCompletion struct {
	TemplateID  string    `json:"template_id"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	CompletedAt time.Time `json:"completed_at"`
}

// TemperatureLog is a single recorded reading.
type TemperatureLog struct {
	ID         string    `json:"id"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Incident is an accident or incident log entry.
type Incident struct {
	ID               string     `json:"id"`
	Type             string     `json:"type"`
	RIDDORReportable bool       `json:"riddor_reportable"`
	ReportedDate     *time.Time `json:"reported_date,omitempty"`
	OccurredAt       *time.Time `json:"occurred_at,omitempty"`
}

// SourceFailure records why a source degraded to an empty collection.
type SourceFailure struct {
	Source   Source        `json:"source"`
	Category ErrorCategory `json:"category"`
	Message  string        `json:"message"`
}

// Snapshot is the immutable set of evidence collections for one evaluation.
// Collections are never nil-checked by consumers; a failed source is empty.
type Snapshot struct {
	SiteID      id.SiteID
	CompanyID   id.CompanyID
	LoadedAt    time.Time
	WindowStart time.Time

	Documents       []Document
	COSHHSheets     []COSHHSheet
	Assessments     []Assessment
	Training        []TrainingRecord
	Appliances      []Appliance
	Templates       []TaskTemplate
	Completions     []TaskCompletion
	TemperatureLogs []TemperatureLog
	Incidents       []Incident

	Failures []SourceFailure
}

// Partial reports whether any source failed to load.
func (s *Snapshot) Partial() bool {
	return len(s.Failures) > 0
}
