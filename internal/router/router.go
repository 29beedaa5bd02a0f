package router

import (
	"encoding/json"
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskdesk/backend/api/handler"
	"github.com/taskdesk/backend/api/transport"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, logger *zap.Logger) *router.Router {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.POST("/api/tasks", handlers.Task.CreateTask)
	r.GET("/api/tasks", handlers.Task.GetTasks)
	r.GET("/api/tasks/{id}", handlers.Task.GetTask)
	r.PATCH("/api/tasks/{id}/status", handlers.Task.UpdateTaskStatus)
	r.PUT("/api/tasks/{id}", handlers.Task.UpdateTask)
	r.DELETE("/api/tasks/{id}", handlers.Task.DeleteTask)

	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		writeJSON(ctx, http.StatusNotFound, transport.RouteNotFound)
	}

	r.PanicHandler = func(ctx *fasthttp.RequestCtx, recovered interface{}) {
		logger.Error("panic while handling request",
			zap.String("path", string(ctx.Path())),
			zap.Any("panic", recovered),
		)
		writeJSON(ctx, http.StatusInternalServerError, transport.InternalFault)
	}

	return r
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}
