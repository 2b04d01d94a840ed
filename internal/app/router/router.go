package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	toolhandler "market_mcp/internal/feature/marketdata/transport/handler"
	"market_mcp/internal/platform/http/handler"
	"market_mcp/internal/platform/http/middleware"
)

// Info identifies the server on /healthz.
type Info struct {
	Name    string
	Version string
}

// NewRouter builds the HTTP surface: health, the MCP SSE transport and the
// REST tool endpoints.
func NewRouter(info Info, sse *server.SSEServer, tools *toolhandler.ToolHandler, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(log))

	// 導通確認用
	health := handler.Health(info.Name, info.Version)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// MCP over SSE: クライアントは /sse を購読し、/message にJSON-RPCをPOSTする
	r.GET("/sse", gin.WrapH(sse.SSEHandler()))
	r.POST("/message", gin.WrapH(sse.MessageHandler()))

	// MCPクライアントを使わずにツールを直接呼び出すためのREST
	r.GET("/tools", tools.List)
	r.POST("/tools/:name", tools.Call)

	return r
}
