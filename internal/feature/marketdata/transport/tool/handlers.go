package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"market_mcp/internal/feature/marketdata/usecase"
)

type handlers struct {
	uc  MarketData
	log zerolog.Logger
}

// respond formats v as the tool's text result. A usecase error becomes a
// tool-level error result so the client sees the message.
func (h *handlers) respond(ctx context.Context, name, symbol string, start time.Time, v any, err error) (*mcp.CallToolResult, error) {
	logger := h.log.With().
		Str("tool", name).
		Str("symbol", symbol).
		Str("request_id", requestID(ctx)).
		Dur("duration", elapsed(start)).
		Logger()

	if err != nil {
		logger.Warn().Err(err).Msg("tool call failed")
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := Format(v)
	if err != nil {
		logger.Error().Err(err).Msg("tool response not serializable")
		return mcp.NewToolResultError(err.Error()), nil
	}
	logger.Debug().Msg("tool call")
	return mcp.NewToolResultText(text), nil
}

const (
	requiredSuffix  = " parameter is required"
	symbolsListText = "symbols must be a list of strings"
)

func missing(param string) *mcp.CallToolResult {
	return mcp.NewToolResultError(param + requiredSuffix)
}

// IsInvalidArgument reports whether res rejects the caller's arguments, as
// opposed to a failure while fetching data.
func IsInvalidArgument(res *mcp.CallToolResult) bool {
	if res == nil || !res.IsError {
		return false
	}
	text := TextOf(res)
	return strings.HasSuffix(text, requiredSuffix) || strings.HasPrefix(text, symbolsListText)
}

// symbolTool builds the handler shared by the single-symbol tools that take
// no other argument.
func (h *handlers) symbolTool(name string, call func(ctx context.Context, symbol string) (any, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil {
			return missing("symbol"), nil
		}
		start := time.Now()
		v, err := call(ctx, symbol)
		return h.respond(ctx, name, symbol, start, v, err)
	}
}

func (h *handlers) priceHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := request.RequireString("symbol")
	if err != nil {
		return missing("symbol"), nil
	}
	period := request.GetString("period", usecase.DefaultPeriod)
	interval := request.GetString("interval", usecase.DefaultInterval)

	start := time.Now()
	v, err := h.uc.GetPriceHistory(ctx, symbol, period, interval)
	return h.respond(ctx, NamePriceHistory, symbol, start, v, err)
}

func (h *handlers) stockNews(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbol, err := request.RequireString("symbol")
	if err != nil {
		return missing("symbol"), nil
	}
	maxArticles := request.GetInt("max_articles", usecase.DefaultMaxArticles)

	start := time.Now()
	v, err := h.uc.GetStockNews(ctx, symbol, maxArticles)
	return h.respond(ctx, NameStockNews, symbol, start, v, err)
}

func (h *handlers) compareStocks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := request.GetArguments()["symbols"]
	if !ok || raw == nil {
		return missing("symbols"), nil
	}
	var symbols []string
	switch v := raw.(type) {
	case []string:
		symbols = v
	case []any:
		symbols = make([]string, 0, len(v))
		for _, s := range v {
			str, ok := s.(string)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("%s, got element %v", symbolsListText, s)), nil
			}
			symbols = append(symbols, str)
		}
	default:
		return mcp.NewToolResultError(symbolsListText), nil
	}

	start := time.Now()
	resp := h.uc.CompareStocks(ctx, symbols)
	return h.respond(ctx, NameCompareStocks, fmt.Sprint(symbols), start, resp, nil)
}
