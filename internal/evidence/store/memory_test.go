package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"inspectready/internal/evidence"
	id "inspectready/pkg/domain"
	"inspectready/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	store     *InMemory
	siteID    id.SiteID
	companyID id.CompanyID
	now       time.Time
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.siteID = id.SiteID(uuid.New())
	s.companyID = id.CompanyID(uuid.New())
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *InMemorySuite) TestListActiveDocumentsSkipsInactive() {
	s.store.AddDocument(s.companyID, evidence.Document{Name: "Premises Licence", IsActive: true})
	s.store.AddDocument(s.companyID, evidence.Document{Name: "Old Licence", IsActive: false})
	s.store.AddDocument(id.CompanyID(uuid.New()), evidence.Document{Name: "Someone Else", IsActive: true})

	docs, err := s.store.ListActiveDocuments(context.Background(), s.companyID)

	s.Require().NoError(err)
	s.Require().Len(docs, 1)
	s.Equal("Premises Licence", docs[0].Name)
}

func (s *InMemorySuite) TestWindowedSources() {
	windowStart := s.now.Add(-evidence.Window)
	s.store.AddCompletion(s.siteID, evidence.TaskCompletion{TemplateID: "in", CompletedAt: s.now.Add(-time.Hour)})
	s.store.AddCompletion(s.siteID, evidence.TaskCompletion{TemplateID: "edge", CompletedAt: windowStart})
	s.store.AddCompletion(s.siteID, evidence.TaskCompletion{TemplateID: "out", CompletedAt: windowStart.Add(-time.Second)})
	s.store.AddTemperatureLog(s.siteID, evidence.TemperatureLog{ID: "fresh", RecordedAt: s.now.Add(-24 * time.Hour)})
	s.store.AddTemperatureLog(s.siteID, evidence.TemperatureLog{ID: "stale", RecordedAt: s.now.Add(-45 * 24 * time.Hour)})

	completions, err := s.store.ListCompletions(context.Background(), s.siteID, windowStart)
	s.Require().NoError(err)
	s.Len(completions, 2)

	logs, err := s.store.ListLogs(context.Background(), s.siteID, windowStart)
	s.Require().NoError(err)
	s.Require().Len(logs, 1)
	s.Equal("fresh", logs[0].ID)
}

func (s *InMemorySuite) TestIncidentsReturnFullHistory() {
	old := s.now.AddDate(-2, 0, 0)
	s.store.AddIncident(s.siteID, evidence.Incident{ID: "ancient", OccurredAt: &old})

	incidents, err := s.store.ListIncidents(context.Background(), s.siteID)

	s.Require().NoError(err)
	s.Len(incidents, 1)
}

func (s *InMemorySuite) TestListAppliancesIsSiteScopedOnly() {
	s.store.AddAppliance(evidence.Appliance{ID: "ours", SiteID: s.siteID, CompanyID: s.companyID})
	s.store.AddAppliance(evidence.Appliance{ID: "foreign", SiteID: s.siteID, CompanyID: id.CompanyID(uuid.New())})
	s.store.AddAppliance(evidence.Appliance{ID: "elsewhere", SiteID: id.SiteID(uuid.New()), CompanyID: s.companyID})

	appliances, err := s.store.ListAppliances(context.Background(), s.siteID, s.companyID)

	s.Require().NoError(err)
	s.Len(appliances, 2, "company filtering is left to the loader")
}

func (s *InMemorySuite) TestReturnedSlicesAreCopies() {
	s.store.AddCOSHHSheet(s.companyID, evidence.COSHHSheet{ProductName: "Bleach"})

	sheets, err := s.store.ListActiveSheets(context.Background(), s.companyID)
	s.Require().NoError(err)
	sheets[0].ProductName = "mutated"

	again, err := s.store.ListActiveSheets(context.Background(), s.companyID)
	s.Require().NoError(err)
	s.Equal("Bleach", again[0].ProductName)
}

func TestInMemoryAsLoaderBackend(t *testing.T) {
	mem := NewInMemory()
	siteID := id.SiteID(uuid.New())
	companyID := id.CompanyID(uuid.New())
	mem.AddSite(companyID, siteID)
	mem.AddDocument(companyID, evidence.Document{Name: "Fire Safety Policy", IsActive: true})
	mem.AddAppliance(evidence.Appliance{ID: "foreign", SiteID: siteID, CompanyID: id.CompanyID(uuid.New())})

	snap, err := evidence.New(mem.Stores()).Load(context.Background(), siteID, companyID, time.Now())

	require.NoError(t, err)
	assert.False(t, snap.Partial())
	assert.Len(t, snap.Documents, 1)
	assert.Empty(t, snap.Appliances)
}

func (s *InMemorySuite) TestSiteCompany() {
	s.store.AddSite(s.companyID, s.siteID)

	owner, err := s.store.SiteCompany(context.Background(), s.siteID)
	s.Require().NoError(err)
	s.Equal(s.companyID, owner)

	_, err = s.store.SiteCompany(context.Background(), id.SiteID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func TestInMemoryRejectsAnotherCompanysSite(t *testing.T) {
	mem := NewInMemory()
	owner := id.CompanyID(uuid.New())
	other := id.CompanyID(uuid.New())
	siteID := id.SiteID(uuid.New())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mem.AddSite(owner, siteID)
	mem.AddTraining(siteID, evidence.TrainingRecord{Course: "Food Hygiene", Status: evidence.TrainingCompleted})
	mem.AddIncident(siteID, evidence.Incident{ID: "slip", RIDDORReportable: true})
	mem.AddTemperatureLog(siteID, evidence.TemperatureLog{ID: "fridge-1", RecordedAt: now.Add(-time.Hour)})

	loader := evidence.New(mem.Stores())

	snap, err := loader.Load(context.Background(), siteID, other, now)
	require.ErrorIs(t, err, evidence.ErrSiteNotFound)
	assert.Nil(t, snap)

	_, err = loader.Load(context.Background(), id.SiteID(uuid.New()), owner, now)
	assert.ErrorIs(t, err, evidence.ErrSiteNotFound, "unregistered sites are not loaded")

	snap, err = loader.Load(context.Background(), siteID, owner, now)
	require.NoError(t, err)
	assert.Len(t, snap.Training, 1)
	assert.Len(t, snap.Incidents, 1)
	assert.Len(t, snap.TemperatureLogs, 1)
}
