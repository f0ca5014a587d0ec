package xcontext

import (
	"context"
	"net/http"

	"github.com/coopnet-lab/backend/config"
	"github.com/coopnet-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey          struct{}
	txKey          struct{}
	loggerKey      struct{}
	configsKey     struct{}
	userIDKey      struct{}
	httpRequestKey struct{}
	httpWriterKey  struct{}
	responseKey    struct{}
	errorKey       struct{}
)

// txHolder is mutable so a committed transaction can be disarmed without
// deriving a new context, keeping the defer-rollback idiom working.
type txHolder struct {
	tx *gorm.DB
}

type anyHolder struct {
	value any
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction if one is in flight, otherwise the root
// database handle.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		return holder.tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

// WithDBTransaction begins a transaction on the current database handle.
// All DB(ctx) calls with the returned context go through the transaction
// until it is committed or rolled back.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txHolder{tx: DB(ctx).Begin()})
}

// WithCommitDBTransaction commits the in-flight transaction if any. After
// the commit, a deferred WithRollbackDBTransaction becomes a no-op.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		holder.tx.Commit()
		holder.tx = nil
	}

	return ctx
}

// WithRollbackDBTransaction rollbacks the in-flight transaction if it has
// not been committed yet.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(txKey{}).(*txHolder); ok && holder.tx != nil {
		holder.tx.Rollback()
		holder.tx = nil
	}

	return ctx
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

// WithRequestUserID installs the user the request runs on behalf of. The
// value sits in a mutable holder so an identity middleware can fill it in
// after the context chain is already built.
func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, &anyHolder{value: userID})
}

func SetRequestUserID(ctx context.Context, userID string) {
	if holder, ok := ctx.Value(userIDKey{}).(*anyHolder); ok {
		holder.value = userID
	}
}

// RequestUserID returns the user on whose behalf the request runs, or an
// empty string for anonymous requests.
func RequestUserID(ctx context.Context) string {
	if holder, ok := ctx.Value(userIDKey{}).(*anyHolder); ok {
		if id, ok := holder.value.(string); ok {
			return id
		}
	}

	return ""
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return ctx.Value(httpRequestKey{}).(*http.Request)
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	return ctx.Value(httpWriterKey{}).(http.ResponseWriter)
}

// WithResponseAndError installs mutable holders so the router can record
// the handler outcome for After middlewares and Closers.
func WithResponseAndError(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, responseKey{}, &anyHolder{})
	return context.WithValue(ctx, errorKey{}, &anyHolder{})
}

func SetResponse(ctx context.Context, resp any) {
	if holder, ok := ctx.Value(responseKey{}).(*anyHolder); ok {
		holder.value = resp
	}
}

func GetResponse(ctx context.Context) any {
	if holder, ok := ctx.Value(responseKey{}).(*anyHolder); ok {
		return holder.value
	}

	return nil
}

func SetError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(errorKey{}).(*anyHolder); ok {
		holder.value = err
	}
}

func Error(ctx context.Context) error {
	if holder, ok := ctx.Value(errorKey{}).(*anyHolder); ok && holder.value != nil {
		return holder.value.(error)
	}

	return nil
}
