package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"inspectready/internal/catalog"
	"inspectready/internal/evidence"
	"inspectready/internal/readiness"
	"inspectready/internal/readiness/metrics"
	"inspectready/internal/readiness/mocks"
	"inspectready/internal/readiness/service"
	id "inspectready/pkg/domain"
	dErrors "inspectready/pkg/domain-errors"
	"inspectready/pkg/platform/audit"
	"inspectready/pkg/requestcontext"
)

// =============================================================================
// Readiness Service Test Suite
// =============================================================================
// Justification for unit tests: cache bypass, partial-report handling and
// audit emission are orchestration decisions that the HTTP tests only see
// indirectly.

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	loader  *mocks.MockEvidenceLoader
	cache   *mocks.MockReportCache
	auditor *mocks.MockAuditPort
	metrics *metrics.Metrics
	svc     *service.Service

	siteID    id.SiteID
	companyID id.CompanyID
	userID    id.UserID
	now       time.Time
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.loader = mocks.NewMockEvidenceLoader(s.ctrl)
	s.cache = mocks.NewMockReportCache(s.ctrl)
	s.auditor = mocks.NewMockAuditPort(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())

	s.svc = service.New(s.loader,
		service.WithCache(s.cache),
		service.WithAuditor(s.auditor),
		service.WithMetrics(s.metrics),
		service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	s.siteID = id.SiteID(uuid.New())
	s.companyID = id.CompanyID(uuid.New())
	s.userID = id.UserID(uuid.New())
	s.now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.ctx = requestcontext.WithUserID(s.ctx, s.userID)
	s.ctx = requestcontext.WithRequestID(s.ctx, "req-123")
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) request() service.GenerateRequest {
	return service.GenerateRequest{SiteID: s.siteID, CompanyID: s.companyID}
}

func (s *ServiceSuite) snapshot(failures ...evidence.SourceFailure) *evidence.Snapshot {
	return &evidence.Snapshot{
		SiteID:      s.siteID,
		CompanyID:   s.companyID,
		LoadedAt:    s.now,
		WindowStart: s.now.Add(-evidence.Window),
		Documents: []evidence.Document{
			{Name: "Premises Licence", IsActive: true},
		},
		Failures: failures,
	}
}

func (s *ServiceSuite) TestRejectsMissingSiteOrCompany() {
	for _, req := range []service.GenerateRequest{
		{CompanyID: s.companyID},
		{SiteID: s.siteID},
	} {
		report, err := s.svc.GenerateReport(s.ctx, req)
		s.Nil(report)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation), "got %v", err)
	}
}

func (s *ServiceSuite) TestCacheMissLoadsScoresAndCaches() {
	s.cache.EXPECT().Get(gomock.Any(), s.companyID, s.siteID).Return(nil, false, nil)
	s.loader.EXPECT().Load(gomock.Any(), s.siteID, s.companyID, s.now).Return(s.snapshot(), nil)

	var cached *readiness.Report
	s.cache.EXPECT().Set(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *readiness.Report) error {
		cached = r
		return nil
	})

	var event audit.Event
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		event = e
		return nil
	})

	report, err := s.svc.GenerateReport(s.ctx, s.request())
	s.Require().NoError(err)

	s.False(report.ID.IsNil(), "service stamps a report id")
	s.Equal(catalog.Version, report.CatalogVersion)
	s.Equal(s.now, report.GeneratedAt)
	s.Equal(s.siteID, report.SiteID)
	s.Equal(len(catalog.Requirements()), report.Overall.TotalRequirements)
	s.Equal(1, report.Overall.CompletedRequirements)
	s.Require().NotNil(cached)
	s.Equal(report.ID, cached.ID)

	s.Equal(string(audit.EventReportGenerated), event.Action)
	s.Equal(s.userID, event.UserID)
	s.Equal(report.ID, event.ReportID)
	s.Equal("req-123", event.RequestID)
	s.Empty(event.FailedSources)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues("miss")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ReportsGenerated.WithLabelValues("0", "false")))
}

func (s *ServiceSuite) TestCacheHitSkipsLoader() {
	cached := &readiness.Report{ID: id.NewReportID(), SiteID: s.siteID, CompanyID: s.companyID}
	s.cache.EXPECT().Get(gomock.Any(), s.companyID, s.siteID).Return(cached, true, nil)
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		s.Equal(string(audit.EventReportCached), e.Action)
		return nil
	})

	report, err := s.svc.GenerateReport(s.ctx, s.request())
	s.Require().NoError(err)
	s.Same(cached, report)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues("hit")))
}

func (s *ServiceSuite) TestFreshBypassesCacheLookup() {
	s.loader.EXPECT().Load(gomock.Any(), s.siteID, s.companyID, s.now).Return(s.snapshot(), nil)
	s.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	req := s.request()
	req.Fresh = true
	_, err := s.svc.GenerateReport(s.ctx, req)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestPartialReportIsReturnedButNotCached() {
	failure := evidence.SourceFailure{Source: evidence.SourceTraining, Category: evidence.ErrorTimeout, Message: "deadline exceeded"}
	s.cache.EXPECT().Get(gomock.Any(), s.companyID, s.siteID).Return(nil, false, nil)
	s.loader.EXPECT().Load(gomock.Any(), s.siteID, s.companyID, s.now).Return(s.snapshot(failure), nil)
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		s.Equal([]string{"training"}, e.FailedSources)
		return nil
	})

	report, err := s.svc.GenerateReport(s.ctx, s.request())
	s.Require().NoError(err)
	s.True(report.Partial())
	s.Equal([]evidence.SourceFailure{failure}, report.FailedSources)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ReportsGenerated.WithLabelValues("0", "true")))
}

func (s *ServiceSuite) TestCancelledLoadFails() {
	s.cache.EXPECT().Get(gomock.Any(), s.companyID, s.siteID).Return(nil, false, nil)
	s.loader.EXPECT().Load(gomock.Any(), s.siteID, s.companyID, s.now).Return(nil, context.Canceled)

	report, err := s.svc.GenerateReport(s.ctx, s.request())
	s.Nil(report)
	s.ErrorIs(err, context.Canceled)
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}

func (s *ServiceSuite) TestSiteOutsideCompanyIsNotFound() {
	s.cache.EXPECT().Get(gomock.Any(), s.companyID, s.siteID).Return(nil, false, nil)
	s.loader.EXPECT().Load(gomock.Any(), s.siteID, s.companyID, s.now).Return(nil, evidence.ErrSiteNotFound)

	report, err := s.svc.GenerateReport(s.ctx, s.request())
	s.Nil(report)
	s.ErrorIs(err, evidence.ErrSiteNotFound)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestCacheErrorsDegradeToLoad() {
	s.cache.EXPECT().Get(gomock.Any(), s.companyID, s.siteID).Return(nil, false, errors.New("redis down"))
	s.loader.EXPECT().Load(gomock.Any(), s.siteID, s.companyID, s.now).Return(s.snapshot(), nil)
	s.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	report, err := s.svc.GenerateReport(s.ctx, s.request())
	s.Require().NoError(err)
	s.NotNil(report)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CacheLookups.WithLabelValues("error")))
}

func (s *ServiceSuite) TestAuditFailureDoesNotFailRead() {
	s.cache.EXPECT().Get(gomock.Any(), s.companyID, s.siteID).Return(nil, false, nil)
	s.loader.EXPECT().Load(gomock.Any(), s.siteID, s.companyID, s.now).Return(s.snapshot(), nil)
	s.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("audit buffer full"))

	_, err := s.svc.GenerateReport(s.ctx, s.request())
	s.NoError(err)
}

func (s *ServiceSuite) TestCustomRequirements() {
	req, ok := catalog.ByID("premises-licence")
	s.Require().True(ok)
	svc := service.New(s.loader, service.WithRequirements([]catalog.Requirement{req}, "test"))
	s.loader.EXPECT().Load(gomock.Any(), s.siteID, s.companyID, s.now).Return(s.snapshot(), nil)

	report, err := svc.GenerateReport(s.ctx, s.request())
	s.Require().NoError(err)
	s.Equal("test", report.CatalogVersion)
	s.Equal(100, report.Overall.OverallCompletionRate)
	s.Equal(5, report.Overall.Rating.Stars)
	s.Len(svc.Requirements(), 1)
}
