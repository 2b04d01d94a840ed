// Package tool exposes the marketdata usecase as MCP tools.
package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"market_mcp/internal/feature/marketdata/domain/entity"
)

// ErrUnknownTool is returned by Call for a name that is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// MarketData is the usecase surface the tools need.
// Goの慣例に従い、インターフェースは利用者（transport）側で定義します。
type MarketData interface {
	GetCurrentQuote(ctx context.Context, symbol string) (entity.QuoteResponse, error)
	GetPriceHistory(ctx context.Context, symbol, period, interval string) (any, error)
	GetCompanyProfile(ctx context.Context, symbol string) (entity.CompanyProfileResponse, error)
	GetKeyStatistics(ctx context.Context, symbol string) (entity.KeyStatisticsResponse, error)
	GetValuationMetrics(ctx context.Context, symbol string) (entity.ValuationMetricsResponse, error)
	GetFinancialHealth(ctx context.Context, symbol string) (entity.FinancialHealthResponse, error)
	GetDividendInfo(ctx context.Context, symbol string) (entity.DividendInfoResponse, error)
	GetAnalystTargets(ctx context.Context, symbol string) (entity.AnalystTargetsResponse, error)
	GetStockNews(ctx context.Context, symbol string, maxArticles int) (any, error)
	CompareStocks(ctx context.Context, symbols []string) entity.CompareResponse
}

// Registry holds every tool definition paired with its handler, in the
// order they are advertised.
type Registry struct {
	tools  []server.ServerTool
	byName map[string]server.ServerTool
}

// NewRegistry builds the ten marketdata tools on top of uc.
func NewRegistry(uc MarketData, log zerolog.Logger) *Registry {
	h := &handlers{uc: uc, log: log}
	tools := []server.ServerTool{
		{Tool: currentQuoteTool(), Handler: h.symbolTool(NameCurrentQuote, func(ctx context.Context, s string) (any, error) {
			return uc.GetCurrentQuote(ctx, s)
		})},
		{Tool: priceHistoryTool(), Handler: h.priceHistory},
		{Tool: companyProfileTool(), Handler: h.symbolTool(NameCompanyProfile, func(ctx context.Context, s string) (any, error) {
			return uc.GetCompanyProfile(ctx, s)
		})},
		{Tool: keyStatisticsTool(), Handler: h.symbolTool(NameKeyStatistics, func(ctx context.Context, s string) (any, error) {
			return uc.GetKeyStatistics(ctx, s)
		})},
		{Tool: valuationMetricsTool(), Handler: h.symbolTool(NameValuationMetrics, func(ctx context.Context, s string) (any, error) {
			return uc.GetValuationMetrics(ctx, s)
		})},
		{Tool: financialHealthTool(), Handler: h.symbolTool(NameFinancialHealth, func(ctx context.Context, s string) (any, error) {
			return uc.GetFinancialHealth(ctx, s)
		})},
		{Tool: dividendInfoTool(), Handler: h.symbolTool(NameDividendInfo, func(ctx context.Context, s string) (any, error) {
			return uc.GetDividendInfo(ctx, s)
		})},
		{Tool: analystTargetsTool(), Handler: h.symbolTool(NameAnalystTargets, func(ctx context.Context, s string) (any, error) {
			return uc.GetAnalystTargets(ctx, s)
		})},
		{Tool: stockNewsTool(), Handler: h.stockNews},
		{Tool: compareStocksTool(), Handler: h.compareStocks},
	}

	byName := make(map[string]server.ServerTool, len(tools))
	for _, t := range tools {
		byName[t.Tool.Name] = t
	}
	return &Registry{tools: tools, byName: byName}
}

// Register adds every tool to s.
func (r *Registry) Register(s *server.MCPServer) {
	s.AddTools(r.tools...)
}

// Tools returns the tool definitions in registration order.
func (r *Registry) Tools() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Tool)
	}
	return out
}

// Call invokes the named tool directly with args, outside any MCP session.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return t.Handler(ctx, req)
}

type requestIDKey struct{}

// WithRequestID attaches a request id that tool logs will carry.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Format renders v the way every tool responds: JSON indented by two spaces.
func Format(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("format response: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// TextOf returns the text of the first content block of res.
func TextOf(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	for _, c := range res.Content {
		switch t := c.(type) {
		case mcp.TextContent:
			return t.Text
		case *mcp.TextContent:
			return t.Text
		}
	}
	return ""
}

func elapsed(start time.Time) time.Duration {
	return time.Since(start).Round(time.Microsecond)
}
