package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"inspectready/internal/ratelimit"
	"inspectready/pkg/platform/httputil"
	"inspectready/pkg/requestcontext"
)

// DefaultWindow is the budget window used unless WithWindow overrides it.
const DefaultWindow = time.Minute

// Middleware enforces a per-company request budget on authenticated routes.
type Middleware struct {
	store    ratelimit.Store
	logger   *slog.Logger
	limit    int
	window   time.Duration
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns the middleware into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// WithWindow overrides the default one minute window.
func WithWindow(window time.Duration) Option {
	return func(m *Middleware) {
		if window > 0 {
			m.window = window
		}
	}
}

// New builds a limiter allowing limit requests per company per window. A
// limit of zero or less disables it.
func New(store ratelimit.Store, limit int, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		store:  store,
		logger: logger,
		limit:  limit,
		window: DefaultWindow,
	}
	for _, opt := range opts {
		opt(m)
	}
	if limit <= 0 || store == nil {
		m.disabled = true
	}
	if m.disabled && logger != nil {
		logger.Info("readiness rate limiting disabled")
	}
	return m
}

// PerCompany must run after authentication. Requests without a company pass
// through; the handler rejects them.
func (m *Middleware) PerCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		companyID := requestcontext.CompanyID(ctx)
		if companyID.IsNil() {
			next.ServeHTTP(w, r)
			return
		}

		result, err := m.store.Allow(ctx, ratelimit.CompanyKey(companyID.String()), m.limit, m.window)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to check company rate limit", "error", err, "company_id", companyID.String())
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			writeRateLimitExceeded(w, result)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// exceededResponse is the 429 body.
type exceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"error_description"`
	RetryAfter int    `json:"retry_after"`
}

func addRateLimitHeaders(w http.ResponseWriter, result *ratelimit.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *ratelimit.Result) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &exceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many readiness requests for this company. Please try again later.",
		RetryAfter: result.RetryAfter,
	})
}
