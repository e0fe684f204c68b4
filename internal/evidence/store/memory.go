package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"inspectready/internal/evidence"
	id "inspectready/pkg/domain"
	"inspectready/pkg/platform/sentinel"
)

// InMemory holds evidence for any number of companies and sites. It backs
// local development and tests, and is populated from fixtures.
type InMemory struct {
	mu          sync.RWMutex
	sites       map[id.SiteID]id.CompanyID
	documents   map[id.CompanyID][]evidence.Document
	coshh       map[id.CompanyID][]evidence.COSHHSheet
	assessments map[id.CompanyID][]evidence.Assessment
	templates   map[id.CompanyID][]evidence.TaskTemplate
	training    map[id.SiteID][]evidence.TrainingRecord
	completions map[id.SiteID][]evidence.TaskCompletion
	logs        map[id.SiteID][]evidence.TemperatureLog
	incidents   map[id.SiteID][]evidence.Incident
	appliances  []evidence.Appliance
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemory {
	return &InMemory{
		sites:       make(map[id.SiteID]id.CompanyID),
		documents:   make(map[id.CompanyID][]evidence.Document),
		coshh:       make(map[id.CompanyID][]evidence.COSHHSheet),
		assessments: make(map[id.CompanyID][]evidence.Assessment),
		templates:   make(map[id.CompanyID][]evidence.TaskTemplate),
		training:    make(map[id.SiteID][]evidence.TrainingRecord),
		completions: make(map[id.SiteID][]evidence.TaskCompletion),
		logs:        make(map[id.SiteID][]evidence.TemperatureLog),
		incidents:   make(map[id.SiteID][]evidence.Incident),
	}
}

// Stores exposes the store as every evidence port.
func (s *InMemory) Stores() evidence.Stores {
	return evidence.Stores{
		Sites:           s,
		Documents:       s,
		Training:        s,
		Assessments:     s,
		Tasks:           s,
		TemperatureLogs: s,
		Incidents:       s,
		Appliances:      s,
		COSHH:           s,
	}
}

// AddSite records companyID as the owner of siteID.
func (s *InMemory) AddSite(companyID id.CompanyID, siteID id.SiteID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites[siteID] = companyID
}

func (s *InMemory) SiteCompany(_ context.Context, siteID id.SiteID) (id.CompanyID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owner, ok := s.sites[siteID]
	if !ok {
		return id.CompanyID{}, fmt.Errorf("site %s: %w", siteID, sentinel.ErrNotFound)
	}
	return owner, nil
}

func (s *InMemory) AddDocument(companyID id.CompanyID, d evidence.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[companyID] = append(s.documents[companyID], d)
}

func (s *InMemory) AddCOSHHSheet(companyID id.CompanyID, sheet evidence.COSHHSheet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coshh[companyID] = append(s.coshh[companyID], sheet)
}

func (s *InMemory) AddAssessment(companyID id.CompanyID, a evidence.Assessment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[companyID] = append(s.assessments[companyID], a)
}

func (s *InMemory) AddTemplate(companyID id.CompanyID, t evidence.TaskTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[companyID] = append(s.templates[companyID], t)
}

func (s *InMemory) AddTraining(siteID id.SiteID, r evidence.TrainingRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.training[siteID] = append(s.training[siteID], r)
}

func (s *InMemory) AddCompletion(siteID id.SiteID, c evidence.TaskCompletion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completions[siteID] = append(s.completions[siteID], c)
}

func (s *InMemory) AddTemperatureLog(siteID id.SiteID, l evidence.TemperatureLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[siteID] = append(s.logs[siteID], l)
}

func (s *InMemory) AddIncident(siteID id.SiteID, i evidence.Incident) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidents[siteID] = append(s.incidents[siteID], i)
}

// AddAppliance registers a PAT record. Appliances are stored in one register
// and carry their own site and company.
func (s *InMemory) AddAppliance(a evidence.Appliance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appliances = append(s.appliances, a)
}

func (s *InMemory) ListActiveDocuments(_ context.Context, companyID id.CompanyID) ([]evidence.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]evidence.Document, 0, len(s.documents[companyID]))
	for _, d := range s.documents[companyID] {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *InMemory) ListActiveSheets(_ context.Context, companyID id.CompanyID) ([]evidence.COSHHSheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.coshh[companyID]), nil
}

func (s *InMemory) ListPublishedAssessments(_ context.Context, companyID id.CompanyID) ([]evidence.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.assessments[companyID]), nil
}

func (s *InMemory) ListActiveTemplates(_ context.Context, companyID id.CompanyID) ([]evidence.TaskTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.templates[companyID]), nil
}

func (s *InMemory) ListTrainingRecords(_ context.Context, siteID id.SiteID) ([]evidence.TrainingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.training[siteID]), nil
}

// ListCompletions returns completions at or after windowStart.
func (s *InMemory) ListCompletions(_ context.Context, siteID id.SiteID, windowStart time.Time) ([]evidence.TaskCompletion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]evidence.TaskCompletion, 0)
	for _, c := range s.completions[siteID] {
		if !c.CompletedAt.Before(windowStart) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListLogs returns readings at or after windowStart.
func (s *InMemory) ListLogs(_ context.Context, siteID id.SiteID, windowStart time.Time) ([]evidence.TemperatureLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]evidence.TemperatureLog, 0)
	for _, l := range s.logs[siteID] {
		if !l.RecordedAt.Before(windowStart) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *InMemory) ListIncidents(_ context.Context, siteID id.SiteID) ([]evidence.Incident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.incidents[siteID]), nil
}

// ListAppliances matches on site only, like the register join it stands in
// for. Records from other companies sharing a site ID are returned as-is.
func (s *InMemory) ListAppliances(_ context.Context, siteID id.SiteID, _ id.CompanyID) ([]evidence.Appliance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]evidence.Appliance, 0)
	for _, a := range s.appliances {
		if a.SiteID == siteID {
			out = append(out, a)
		}
	}
	return out, nil
}
