package evidence

import (
	"context"
	"errors"
	"fmt"

	"inspectready/pkg/platform/sentinel"
)

// ErrorCategory is the normalized failure taxonomy for source fetches.
type ErrorCategory string

const (
	// ErrorTimeout indicates the source did not answer within the per-source timeout
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorUnavailable indicates the backing store could not be reached
	ErrorUnavailable ErrorCategory = "unavailable"

	// ErrorCancelled indicates the caller abandoned the evaluation
	ErrorCancelled ErrorCategory = "cancelled"

	// ErrorNotConfigured indicates no store is wired for the source
	ErrorNotConfigured ErrorCategory = "not_configured"

	// ErrorInternal indicates any other failure
	ErrorInternal ErrorCategory = "internal"
)

// SourceError wraps a source fetch failure with its normalized category.
type SourceError struct {
	Source     Source
	Category   ErrorCategory
	Underlying error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("evidence source %s [%s]: %v", e.Source, e.Category, e.Underlying)
}

func (e *SourceError) Unwrap() error {
	return e.Underlying
}

var (
	// ErrSourceNotConfigured is returned for sources with no store wired.
	ErrSourceNotConfigured = errors.New("source not configured")

	// ErrSiteNotFound is returned when the site does not exist or belongs to
	// another company. The two cases are not distinguished to callers.
	ErrSiteNotFound = fmt.Errorf("site not found: %w", sentinel.ErrNotFound)

	// ErrSiteDirectoryNotConfigured is returned when no SiteDirectory is wired.
	// Ownership cannot be checked, so nothing is loaded.
	ErrSiteDirectoryNotConfigured = errors.New("site directory not configured")
)

func newSourceError(source Source, err error) *SourceError {
	return &SourceError{Source: source, Category: categorize(err), Underlying: err}
}

func categorize(err error) ErrorCategory {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTimeout
	case errors.Is(err, context.Canceled):
		return ErrorCancelled
	case errors.Is(err, ErrSourceNotConfigured):
		return ErrorNotConfigured
	case errors.Is(err, sentinel.ErrUnavailable):
		return ErrorUnavailable
	default:
		return ErrorInternal
	}
}

// GetCategory extracts the category from an error chain.
func GetCategory(err error) ErrorCategory {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Category
	}
	return ErrorInternal
}
