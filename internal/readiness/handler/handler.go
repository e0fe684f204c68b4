package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"inspectready/internal/catalog"
	"inspectready/internal/readiness"
	"inspectready/internal/readiness/service"
	id "inspectready/pkg/domain"
	dErrors "inspectready/pkg/domain-errors"
	"inspectready/pkg/platform/audit"
	"inspectready/pkg/platform/httputil"
	"inspectready/pkg/requestcontext"
)

// Service defines the interface for readiness operations.
type Service interface {
	GenerateReport(ctx context.Context, req service.GenerateRequest) (*readiness.Report, error)
	Requirements() []catalog.Requirement
}

// History lists the audit trail recorded for a site.
type History interface {
	ListBySite(ctx context.Context, siteID id.SiteID) ([]audit.Event, error)
}

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Handler wires readiness endpoints to the readiness service.
type Handler struct {
	service Service
	history History
	logger  *slog.Logger
}

type Option func(*Handler)

// WithHistory enables GET /v1/sites/{siteID}/readiness/history.
func WithHistory(history History) Option {
	return func(h *Handler) {
		h.history = history
	}
}

// New constructs a readiness handler with its dependencies.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts readiness endpoints on the router. The history route is
// only mounted when a History source is configured.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/sites/{siteID}/readiness", h.HandleGetReadiness)
	if h.history != nil {
		r.Get("/v1/sites/{siteID}/readiness/history", h.HandleGetHistory)
	}
	r.Get("/v1/requirements", h.HandleListRequirements)
}

// HandleGetReadiness handles GET /v1/sites/{siteID}/readiness.
func (h *Handler) HandleGetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	companyID := requestcontext.CompanyID(ctx)
	if companyID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	siteID, err := id.ParseSiteID(chi.URLParam(r, "siteID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid site id"))
		return
	}

	fresh := false
	if raw := r.URL.Query().Get("fresh"); raw != "" {
		fresh, err = strconv.ParseBool(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "fresh must be a boolean"))
			return
		}
	}

	report, err := h.service.GenerateReport(ctx, service.GenerateRequest{
		SiteID:    siteID,
		CompanyID: companyID,
		Fresh:     fresh,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "readiness report failed",
			"request_id", requestID,
			"site_id", siteID,
			"company_id", companyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "readiness report served",
		"request_id", requestID,
		"site_id", siteID,
		"report_id", report.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromReport(report))
}

// HandleListRequirements handles GET /v1/requirements.
func (h *Handler) HandleListRequirements(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromRequirements(h.service.Requirements()))
}

// HandleGetHistory handles GET /v1/sites/{siteID}/readiness/history.
// Events recorded under another company are never returned, even when the
// site ID matches.
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companyID := requestcontext.CompanyID(ctx)
	if companyID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	siteID, err := id.ParseSiteID(chi.URLParam(r, "siteID"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid site id"))
		return
	}
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = min(limit, maxHistoryLimit)
	}

	events, err := h.history.ListBySite(ctx, siteID)
	if err != nil {
		h.logger.ErrorContext(ctx, "readiness history failed",
			"request_id", requestcontext.RequestID(ctx),
			"site_id", siteID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	entries := make([]HistoryEntry, 0, min(limit, len(events)))
	for i := len(events) - 1; i >= 0 && len(entries) < limit; i-- {
		if events[i].CompanyID != companyID {
			continue
		}
		entries = append(entries, FromEvent(events[i]))
	}
	httputil.WriteJSON(w, http.StatusOK, HistoryResponse{SiteID: siteID.String(), Entries: entries})
}
