package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdesk/backend/api/transport"
	"github.com/taskdesk/backend/domain"
	"github.com/taskdesk/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.SetStatusCode(status)
	if payload == nil {
		return
	}
	ctx.Response.Header.SetContentType("application/json")
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

// respondError maps the domain error taxonomy onto the HTTP contract.
// Anything outside the taxonomy is a store fault: logged in full, surfaced
// as a generic 500 with no internal detail.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	if vErr, ok := domain.AsValidationError(err); ok {
		h.respondJSON(ctx, http.StatusBadRequest, transport.ValidationResponse{Errors: vErr.Errors})
		return
	}
	if domain.IsDomainError(err, domain.ErrCodeNotFound) {
		h.respondJSON(ctx, http.StatusNotFound, transport.ErrorResponse{Error: err.Error()})
		return
	}

	h.logger.Error("store operation failed",
		zap.String("path", string(ctx.Path())),
		zap.String("method", string(ctx.Method())),
		zap.Error(err),
	)
	h.respondJSON(ctx, http.StatusInternalServerError, transport.InternalFault)
}
