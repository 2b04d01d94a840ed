// Package handler はmarketdataツールをREST経由で呼び出すためのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"

	"market_mcp/internal/feature/marketdata/transport/tool"
	"market_mcp/internal/platform/http/middleware"
)

// ToolInvoker はツール一覧と呼び出しのインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ToolInvoker interface {
	Tools() []mcp.Tool
	Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error)
}

// ToolInfo is one entry of GET /tools.
type ToolInfo struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	InputSchema mcp.ToolInputSchema `json:"input_schema"`
}

// MaxBodyBytes caps the size of a tool call's argument body.
const MaxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// ToolHandler はツールのHTTPリクエストを処理します。
type ToolHandler struct {
	tools ToolInvoker
}

// NewToolHandler は指定されたToolInvokerでToolHandlerの新しいインスタンスを生成します。
func NewToolHandler(tools ToolInvoker) *ToolHandler {
	return &ToolHandler{tools: tools}
}

// List は登録済みツールの名前・説明・入力スキーマを返します。
//
// エンドポイント例:
// GET /tools
func (h *ToolHandler) List(c *gin.Context) {
	defs := h.tools.Tools()
	out := make([]ToolInfo, 0, len(defs))
	for _, d := range defs {
		out = append(out, ToolInfo{Name: d.Name, Description: d.Description, InputSchema: d.InputSchema})
	}
	c.JSON(http.StatusOK, out)
}

// Call はJSONボディを引数としてツールを実行し、ツールのJSONテキストをそのまま返します。
//
// エンドポイント例:
// POST /tools/get_current_quote  {"symbol": "AAPL"}
func (h *ToolHandler) Call(c *gin.Context) {
	name := c.Param("name")

	// ボディが空の場合は引数なしとして扱う
	args := map[string]any{}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &args); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "request body must be a JSON object"})
			return
		}
	}

	ctx := tool.WithRequestID(c.Request.Context(), c.GetString(middleware.ContextRequestID))
	res, err := h.tools.Call(ctx, name, args)
	if errors.Is(err, tool.ErrUnknownTool) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "unknown tool: " + name})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	// 引数の不備はクライアントエラー、それ以外は上流の失敗として扱う
	if tool.IsInvalidArgument(res) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: tool.TextOf(res)})
		return
	}
	if res.IsError {
		c.JSON(http.StatusBadGateway, errorResponse{Error: tool.TextOf(res)})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(tool.TextOf(res)))
}
