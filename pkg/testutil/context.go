package testutil

import (
	"net/http"

	id "inspectready/pkg/domain"
	"inspectready/pkg/requestcontext"
)

// WithAuth adds the user and company the auth middleware would resolve from
// a valid token. Invalid IDs are silently ignored.
func WithAuth(req *http.Request, userID, companyID string) *http.Request {
	ctx := req.Context()
	if parsed, err := id.ParseUserID(userID); err == nil {
		ctx = requestcontext.WithUserID(ctx, parsed)
	}
	if parsed, err := id.ParseCompanyID(companyID); err == nil {
		ctx = requestcontext.WithCompanyID(ctx, parsed)
	}
	return req.WithContext(ctx)
}
