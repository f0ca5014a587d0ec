package common

import (
	"context"

	"github.com/coopnet-lab/backend/pkg/errorx"
	"github.com/coopnet-lab/backend/pkg/xcontext"
)

// Pagination normalizes a request's offset/limit against the server
// defaults.
func Pagination(ctx context.Context, offset, limit int) (int, int, error) {
	if offset < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Offset must be non-negative")
	}

	if limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Limit must be non-negative")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		limit = apiCfg.DefaultLimit
	}

	if limit > apiCfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceeded the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	return offset, limit, nil
}
