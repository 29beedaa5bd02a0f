package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdesk/backend/api/transport"
	"github.com/taskdesk/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
}

func NewHealthHandler(adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	h.respondJSON(ctx, http.StatusOK, transport.HealthOK)
}
