package router

import (
	"context"
	"net/http"

	"github.com/coopnet-lab/backend/config"
	"github.com/coopnet-lab/backend/pkg/logger"
	"github.com/coopnet-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// HandlerFunc is the signature of every API handler. The request object
// is bound from query parameters (GET) or the JSON body (POST) before
// the handler runs.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. Returning an error aborts the
// request with that error.
type MiddlewareFunc func(ctx context.Context) error

// CloserFunc runs after the handler, no matter whether it succeeded.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux     *http.ServeMux
	baseCtx context.Context

	befores []MiddlewareFunc
	afters  []CloserFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	ctx := context.Background()
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger)

	r := &Router{mux: http.NewServeMux(), baseCtx: ctx}
	r.closers = append(r.closers, handleResponse())
	return r
}

// Branch returns a new router sharing the same mux and base context but
// with independent middleware chains.
func (r *Router) Branch() *Router {
	return &Router{
		mux:     r.mux,
		baseCtx: r.baseCtx,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]CloserFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(c CloserFunc) {
	r.afters = append(r.afters, c)
}

// AddCloser appends a closer which runs after the response is written.
func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	route(r, http.MethodPost, pattern, handler)
}

func route[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]CloserFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, httpReq *http.Request) {
		ctx := r.baseCtx
		ctx = xcontext.WithHTTPRequest(ctx, httpReq)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithResponseAndError(ctx)
		ctx = xcontext.WithRequestUserID(ctx, "")

		func() {
			if httpReq.Method != method {
				xcontext.SetError(ctx, errMethodNotAllowed)
				return
			}

			var req Request
			if err := bindRequest(httpReq, method, &req); err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			for _, m := range befores {
				if err := m(ctx); err != nil {
					xcontext.SetError(ctx, err)
					return
				}
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			xcontext.SetResponse(ctx, resp)

			for _, a := range afters {
				a(ctx)
			}
		}()

		for _, c := range closers {
			c(ctx)
		}
	})
}
