package router

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/coopnet-lab/backend/pkg/errorx"
	"github.com/coopnet-lab/backend/pkg/xcontext"
)

var errMethodNotAllowed = errorx.New(errorx.BadRequest, "Method not allowed")

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func handleResponse() CloserFunc {
	return func(ctx context.Context) {
		if err := xcontext.Error(ctx); err != nil {
			if werr := WriteJson(ctx, newErrorResponse(err)); werr != nil {
				xcontext.Logger(ctx).Errorf("cannot write the error response: %v", werr)
			}
			return
		}

		if err := WriteJson(ctx, newResponse(xcontext.GetResponse(ctx))); err != nil {
			xcontext.Logger(ctx).Errorf("cannot write the response: %v", err)
		}
	}
}

func WriteJson(ctx context.Context, resp any) error {
	w := xcontext.HTTPWriter(ctx)
	w.Header().Set("Content-Type", "application/json")

	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
