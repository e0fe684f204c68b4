package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"

	"inspectready/internal/evidence"
	id "inspectready/pkg/domain"
	"inspectready/pkg/platform/sentinel"
)

//go:embed schema.sql
var schema string

// Migrate creates the evidence tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply evidence schema: %w", err)
	}
	return nil
}

// PostgresStore reads evidence from the record-keeping database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed evidence store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Stores exposes the store as every evidence port.
func (s *PostgresStore) Stores() evidence.Stores {
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

func (s *PostgresStore) SiteCompany(ctx context.Context, siteID id.SiteID) (id.CompanyID, error) {
	var company uuid.UUID
	err := s.db.QueryRowContext(ctx, `SELECT company_id FROM sites WHERE id = $1`, siteID.String()).Scan(&company)
	if errors.Is(err, sql.ErrNoRows) {
		return id.CompanyID{}, fmt.Errorf("site %s: %w", siteID, sentinel.ErrNotFound)
	}
	if err != nil {
		return id.CompanyID{}, queryError("resolve site", err)
	}
	return id.CompanyID(company), nil
}

func (s *PostgresStore) ListActiveDocuments(ctx context.Context, companyID id.CompanyID) ([]evidence.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, expiry_date
		FROM documents
		WHERE company_id = $1 AND is_active
		ORDER BY created_at, id`, companyID.String())
	if err != nil {
		return nil, queryError("list documents", err)
	}
	defer rows.Close()

	out := make([]evidence.Document, 0)
	for rows.Next() {
		var (
			d      evidence.Document
			expiry sql.NullTime
		)
		if err := rows.Scan(&d.Name, &expiry); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.ExpiryDate = nullTime(expiry)
		d.IsActive = true
		out = append(out, d)
	}
	return out, rowsError("list documents", rows)
}

func (s *PostgresStore) ListActiveSheets(ctx context.Context, companyID id.CompanyID) ([]evidence.COSHHSheet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_name, expiry_date
		FROM coshh_sheets
		WHERE company_id = $1 AND is_active
		ORDER BY created_at, id`, companyID.String())
	if err != nil {
		return nil, queryError("list coshh sheets", err)
	}
	defer rows.Close()

	out := make([]evidence.COSHHSheet, 0)
	for rows.Next() {
		var (
			sheet  evidence.COSHHSheet
			expiry sql.NullTime
		)
		if err := rows.Scan(&sheet.ProductName, &expiry); err != nil {
			return nil, fmt.Errorf("scan coshh sheet: %w", err)
		}
		sheet.ExpiryDate = nullTime(expiry)
		out = append(out, sheet)
	}
	return out, rowsError("list coshh sheets", rows)
}

func (s *PostgresStore) ListPublishedAssessments(ctx context.Context, companyID id.CompanyID) ([]evidence.Assessment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT template_type, title, next_review_date
		FROM risk_assessments
		WHERE company_id = $1 AND status = 'published'
		ORDER BY created_at, id`, companyID.String())
	if err != nil {
		return nil, queryError("list assessments", err)
	}
	defer rows.Close()

	out := make([]evidence.Assessment, 0)
	for rows.Next() {
		var (
			a      evidence.Assessment
			review sql.NullTime
		)
		if err := rows.Scan(&a.TemplateType, &a.Title, &review); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		a.NextReviewDate = nullTime(review)
		out = append(out, a)
	}
	return out, rowsError("list assessments", rows)
}

func (s *PostgresStore) ListTrainingRecords(ctx context.Context, siteID id.SiteID) ([]evidence.TrainingRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT course, status
		FROM training_records
		WHERE site_id = $1
		ORDER BY created_at, id`, siteID.String())
	if err != nil {
		return nil, queryError("list training", err)
	}
	defer rows.Close()

	out := make([]evidence.TrainingRecord, 0)
	for rows.Next() {
		var r evidence.TrainingRecord
		if err := rows.Scan(&r.Course, &r.Status); err != nil {
			return nil, fmt.Errorf("scan training record: %w", err)
		}
		out = append(out, r)
	}
	return out, rowsError("list training", rows)
}

func (s *PostgresStore) ListActiveTemplates(ctx context.Context, companyID id.CompanyID) ([]evidence.TaskTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, name
		FROM task_templates
		WHERE company_id = $1 AND is_active
		ORDER BY id`, companyID.String())
	if err != nil {
		return nil, queryError("list task templates", err)
	}
	defer rows.Close()

	out := make([]evidence.TaskTemplate, 0)
	for rows.Next() {
		var t evidence.TaskTemplate
		if err := rows.Scan(&t.ID, &t.Category, &t.Name); err != nil {
			return nil, fmt.Errorf("scan task template: %w", err)
		}
		out = append(out, t)
	}
	return out, rowsError("list task templates", rows)
}

func (s *PostgresStore) ListCompletions(ctx context.Context, siteID id.SiteID, windowStart time.Time) ([]evidence.TaskCompletion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.template_id, t.category, t.name, c.completed_at
		FROM task_completions c
		JOIN task_templates t ON t.id = c.template_id
		WHERE c.site_id = $1 AND c.completed_at >= $2
		ORDER BY c.completed_at DESC`, siteID.String(), windowStart)
	if err != nil {
		return nil, queryError("list task completions", err)
	}
	defer rows.Close()

	out := make([]evidence.TaskCompletion, 0)
	for rows.Next() {
		var c evidence.TaskCompletion
		if err := rows.Scan(&c.TemplateID, &c.Category, &c.Name, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan task completion: %w", err)
		}
		out = append(out, c)
	}
	return out, rowsError("list task completions", rows)
}

func (s *PostgresStore) ListLogs(ctx context.Context, siteID id.SiteID, windowStart time.Time) ([]evidence.TemperatureLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recorded_at
		FROM temperature_logs
		WHERE site_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at DESC`, siteID.String(), windowStart)
	if err != nil {
		return nil, queryError("list temperature logs", err)
	}
	defer rows.Close()

	out := make([]evidence.TemperatureLog, 0)
	for rows.Next() {
		var l evidence.TemperatureLog
		if err := rows.Scan(&l.ID, &l.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan temperature log: %w", err)
		}
		out = append(out, l)
	}
	return out, rowsError("list temperature logs", rows)
}

func (s *PostgresStore) ListIncidents(ctx context.Context, siteID id.SiteID) ([]evidence.Incident, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, riddor_reportable, reported_date, occurred_at
		FROM incidents
		WHERE site_id = $1
		ORDER BY occurred_at DESC NULLS LAST, id`, siteID.String())
	if err != nil {
		return nil, queryError("list incidents", err)
	}
	defer rows.Close()

	out := make([]evidence.Incident, 0)
	for rows.Next() {
		var (
			i                  evidence.Incident
			reported, occurred sql.NullTime
		)
		if err := rows.Scan(&i.ID, &i.Type, &i.RIDDORReportable, &reported, &occurred); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		i.ReportedDate = nullTime(reported)
		i.OccurredAt = nullTime(occurred)
		out = append(out, i)
	}
	return out, rowsError("list incidents", rows)
}

// ListAppliances joins the PAT register to sites. The join matches on site or
// company, so callers must filter to the exact tenant.
func (s *PostgresStore) ListAppliances(ctx context.Context, siteID id.SiteID, companyID id.CompanyID) ([]evidence.Appliance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.site_id, s.company_id, a.has_current_test_label
		FROM pat_appliances a
		JOIN sites s ON s.id = a.site_id
		WHERE a.site_id = $1 OR s.company_id = $2
		ORDER BY a.id`, siteID.String(), companyID.String())
	if err != nil {
		return nil, queryError("list appliances", err)
	}
	defer rows.Close()

	out := make([]evidence.Appliance, 0)
	for rows.Next() {
		var (
			a             evidence.Appliance
			site, company uuid.UUID
		)
		if err := rows.Scan(&a.ID, &site, &company, &a.HasCurrentTestLabel); err != nil {
			return nil, fmt.Errorf("scan appliance: %w", err)
		}
		a.SiteID = id.SiteID(site)
		a.CompanyID = id.CompanyID(company)
		out = append(out, a)
	}
	return out, rowsError("list appliances", rows)
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// queryError tags connection-level failures with sentinel.ErrUnavailable.
func queryError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func rowsError(op string, rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		return queryError(op, err)
	}
	return nil
}
