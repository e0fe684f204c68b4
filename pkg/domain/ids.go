package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "inspectready/pkg/domain-errors"
)

// Typed identifiers keep site, company and user IDs from being swapped at call sites.
type (
	UserID    uuid.UUID
	SiteID    uuid.UUID
	CompanyID uuid.UUID
	ReportID  uuid.UUID
)

func parseUUID(kind, raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return parsed, nil
}

// ParseUserID validates a user identifier taken from a token subject.
func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID("user_id", raw)
	return UserID(parsed), err
}

// ParseSiteID validates a site identifier.
func ParseSiteID(raw string) (SiteID, error) {
	parsed, err := parseUUID("site_id", raw)
	return SiteID(parsed), err
}

// ParseCompanyID validates a company (tenant) identifier.
func ParseCompanyID(raw string) (CompanyID, error) {
	parsed, err := parseUUID("company_id", raw)
	return CompanyID(parsed), err
}

// NewReportID returns a random report identifier.
func NewReportID() ReportID {
	return ReportID(uuid.New())
}

func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id SiteID) String() string    { return uuid.UUID(id).String() }
func (id CompanyID) String() string { return uuid.UUID(id).String() }
func (id ReportID) String() string  { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id SiteID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id CompanyID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ReportID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs render as plain UUID strings in JSON and logs.
func (id UserID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id SiteID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id CompanyID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id ReportID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *SiteID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *CompanyID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *ReportID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
