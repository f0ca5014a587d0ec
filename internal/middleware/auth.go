package middleware

import (
	"context"

	"github.com/coopnet-lab/backend/pkg/errorx"
	"github.com/coopnet-lab/backend/pkg/xcontext"
)

// Identity resolves the requesting user from the X-User-Id header or the
// user_id query parameter. Token verification belongs to the gateway in
// front of this service.
func Identity(ctx context.Context) error {
	req := xcontext.HTTPRequest(ctx)
	userID := req.Header.Get("X-User-Id")
	if userID == "" {
		userID = req.URL.Query().Get("user_id")
	}

	xcontext.SetRequestUserID(ctx, userID)
	return nil
}

func Authenticate(ctx context.Context) error {
	if xcontext.RequestUserID(ctx) == "" {
		return errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	return nil
}
