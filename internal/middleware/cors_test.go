package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func corsRequest(handler fasthttp.RequestHandler, method, origin string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI("/api/tasks")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}

	ctx := new(fasthttp.RequestCtx)
	ctx.Init(&req, nil, nil)
	handler(ctx)
	return ctx
}

func TestCORS(t *testing.T) {
	var reached bool
	next := func(ctx *fasthttp.RequestCtx) { reached = true }

	t.Run("empty allow-list echoes any origin", func(t *testing.T) {
		reached = false
		ctx := corsRequest(CORS(nil)(next), fasthttp.MethodGet, "http://localhost:5173")
		assert.Equal(t, "http://localhost:5173", string(ctx.Response.Header.Peek("Access-Control-Allow-Origin")))
		assert.True(t, reached)
	})

	t.Run("unlisted origin gets no header", func(t *testing.T) {
		reached = false
		wrapped := CORS([]string{"https://tasks.example.com"})(next)
		ctx := corsRequest(wrapped, fasthttp.MethodGet, "http://evil.example.com")
		assert.Empty(t, ctx.Response.Header.Peek("Access-Control-Allow-Origin"))
		assert.True(t, reached)
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		reached = false
		ctx := corsRequest(CORS(nil)(next), fasthttp.MethodOptions, "http://localhost:5173")
		assert.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode())
		assert.NotEmpty(t, ctx.Response.Header.Peek("Access-Control-Allow-Methods"))
		assert.False(t, reached)
	})
}
