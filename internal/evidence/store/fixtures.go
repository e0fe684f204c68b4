package store

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"inspectready/internal/evidence"
	id "inspectready/pkg/domain"
)

// Fixtures is the YAML seed format for the in-memory store.
//
// Date fields accept RFC 3339 timestamps, plain dates, or offsets from load
// time such as "now-3d" or "now+90d". An unparseable date is treated as absent.
type Fixtures struct {
	Companies []CompanyFixture `yaml:"companies"`
}

type CompanyFixture struct {
	ID          string              `yaml:"id"`
	Documents   []documentFixture   `yaml:"documents"`
	COSHHSheets []coshhFixture      `yaml:"coshh_sheets"`
	Assessments []assessmentFixture `yaml:"assessments"`
	Templates   []templateFixture   `yaml:"task_templates"`
	Sites       []SiteFixture       `yaml:"sites"`
}

type SiteFixture struct {
	ID              string                  `yaml:"id"`
	Training        []trainingFixture       `yaml:"training"`
	Completions     []completionFixture     `yaml:"task_completions"`
	TemperatureLogs []temperatureLogFixture `yaml:"temperature_logs"`
	Incidents       []incidentFixture       `yaml:"incidents"`
	Appliances      []applianceFixture      `yaml:"appliances"`
}

type documentFixture struct {
	Name       string `yaml:"name"`
	ExpiryDate any    `yaml:"expiry_date"`
	Active     *bool  `yaml:"active"`
}

type coshhFixture struct {
	ProductName string `yaml:"product_name"`
	ExpiryDate  any    `yaml:"expiry_date"`
}

type assessmentFixture struct {
	TemplateType   string `yaml:"template_type"`
	Title          string `yaml:"title"`
	NextReviewDate any    `yaml:"next_review_date"`
}

type templateFixture struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	Name     string `yaml:"name"`
}

type trainingFixture struct {
	Course string `yaml:"course"`
	Status string `yaml:"status"`
}

type completionFixture struct {
	TemplateID  string `yaml:"template_id"`
	Category    string `yaml:"category"`
	Name        string `yaml:"name"`
	CompletedAt any    `yaml:"completed_at"`
}

type temperatureLogFixture struct {
	ID         string `yaml:"id"`
	RecordedAt any    `yaml:"recorded_at"`
}

type incidentFixture struct {
	ID               string `yaml:"id"`
	Type             string `yaml:"type"`
	RIDDORReportable bool   `yaml:"riddor_reportable"`
	ReportedDate     any    `yaml:"reported_date"`
	OccurredAt       any    `yaml:"occurred_at"`
}

type applianceFixture struct {
	ID                  string `yaml:"id"`
	CompanyID           string `yaml:"company_id"`
	HasCurrentTestLabel bool   `yaml:"has_current_test_label"`
}

// LoadFixtures reads a fixtures file into a new in-memory store.
func LoadFixtures(path string, now time.Time, logger *slog.Logger) (*InMemory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return DecodeFixtures(f, now, logger)
}

// DecodeFixtures parses YAML fixtures. Relative dates resolve against now.
func DecodeFixtures(r io.Reader, now time.Time, logger *slog.Logger) (*InMemory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var fx Fixtures
	if err := yaml.NewDecoder(r).Decode(&fx); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	p := fixtureParser{now: now, logger: logger}
	s := NewInMemory()
	for _, c := range fx.Companies {
		companyID, err := id.ParseCompanyID(c.ID)
		if err != nil {
			return nil, fmt.Errorf("company %q: %w", c.ID, err)
		}
		for _, d := range c.Documents {
			active := d.Active == nil || *d.Active
			s.AddDocument(companyID, evidence.Document{
				Name:       d.Name,
				ExpiryDate: p.optionalTime("expiry_date", d.ExpiryDate),
				IsActive:   active,
			})
		}
		for _, sheet := range c.COSHHSheets {
			s.AddCOSHHSheet(companyID, evidence.COSHHSheet{
				ProductName: sheet.ProductName,
				ExpiryDate:  p.optionalTime("expiry_date", sheet.ExpiryDate),
			})
		}
		for _, a := range c.Assessments {
			s.AddAssessment(companyID, evidence.Assessment{
				TemplateType:   a.TemplateType,
				Title:          a.Title,
				NextReviewDate: p.optionalTime("next_review_date", a.NextReviewDate),
			})
		}
		for _, t := range c.Templates {
			s.AddTemplate(companyID, evidence.TaskTemplate(t))
		}
		for _, site := range c.Sites {
			if err := p.addSite(s, companyID, site); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

type fixtureParser struct {
	now    time.Time
	logger *slog.Logger
}

func (p fixtureParser) addSite(s *InMemory, companyID id.CompanyID, site SiteFixture) error {
	siteID, err := id.ParseSiteID(site.ID)
	if err != nil {
		return fmt.Errorf("site %q: %w", site.ID, err)
	}
	if owner, ok := s.sites[siteID]; ok && owner != companyID {
		return fmt.Errorf("site %q: listed under two companies", site.ID)
	}
	s.AddSite(companyID, siteID)
	for _, t := range site.Training {
		s.AddTraining(siteID, evidence.TrainingRecord{
			Course: t.Course,
			Status: evidence.TrainingStatus(strings.ToLower(t.Status)),
		})
	}
	for _, c := range site.Completions {
		at := p.optionalTime("completed_at", c.CompletedAt)
		if at == nil {
			continue
		}
		s.AddCompletion(siteID, evidence.TaskCompletion{
			TemplateID:  c.TemplateID,
			Category:    c.Category,
			Name:        c.Name,
			CompletedAt: *at,
		})
	}
	for _, l := range site.TemperatureLogs {
		at := p.optionalTime("recorded_at", l.RecordedAt)
		if at == nil {
			continue
		}
		s.AddTemperatureLog(siteID, evidence.TemperatureLog{ID: l.ID, RecordedAt: *at})
	}
	for _, i := range site.Incidents {
		s.AddIncident(siteID, evidence.Incident{
			ID:               i.ID,
			Type:             i.Type,
			RIDDORReportable: i.RIDDORReportable,
			ReportedDate:     p.optionalTime("reported_date", i.ReportedDate),
			OccurredAt:       p.optionalTime("occurred_at", i.OccurredAt),
		})
	}
	for _, a := range site.Appliances {
		owner := companyID
		if a.CompanyID != "" {
			parsed, err := id.ParseCompanyID(a.CompanyID)
			if err != nil {
				return fmt.Errorf("appliance %q: %w", a.ID, err)
			}
			owner = parsed
		}
		s.AddAppliance(evidence.Appliance{
			ID:                  a.ID,
			SiteID:              siteID,
			CompanyID:           owner,
			HasCurrentTestLabel: a.HasCurrentTestLabel,
		})
	}
	return nil
}

// optionalTime returns nil for empty or unparseable values.
func (p fixtureParser) optionalTime(field string, raw any) *time.Time {
	if raw == nil {
		return nil
	}
	if str, ok := raw.(string); ok {
		str = strings.TrimSpace(str)
		if str == "" {
			return nil
		}
		if t, ok := relativeTime(str, p.now); ok {
			return &t
		}
	}
	t, err := cast.ToTimeE(raw)
	if err != nil {
		p.logger.Warn("ignoring malformed fixture date", "field", field, "value", raw, "error", err)
		return nil
	}
	return &t
}

// relativeTime parses "now", "now-3d", "now+12h" and similar.
func relativeTime(s string, now time.Time) (time.Time, bool) {
	if !strings.HasPrefix(s, "now") {
		return time.Time{}, false
	}
	offset := strings.TrimPrefix(s, "now")
	if offset == "" {
		return now, true
	}
	if strings.HasSuffix(offset, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(offset, "d"))
		if err != nil {
			return time.Time{}, false
		}
		return now.AddDate(0, 0, days), true
	}
	d, err := time.ParseDuration(offset)
	if err != nil {
		return time.Time{}, false
	}
	return now.Add(d), true
}
