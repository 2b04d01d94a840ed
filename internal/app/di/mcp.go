package di

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"market_mcp/internal/feature/marketdata/transport/tool"
	"market_mcp/internal/feature/marketdata/usecase"
	"market_mcp/internal/platform/config"
)

// NewToolRegistry wires the usecase over market and wraps it in the tool registry.
func NewToolRegistry(cfg *config.Config, market usecase.MarketRepository, log zerolog.Logger) *tool.Registry {
	uc := usecase.NewMarketDataUsecase(market, cfg.Batch.Concurrency, log.With().Str("component", "usecase").Logger())
	return tool.NewRegistry(uc, log.With().Str("component", "tool").Logger())
}

// NewMCPServer creates the MCP server with every tool registered.
func NewMCPServer(cfg *config.Config, registry *tool.Registry) *server.MCPServer {
	s := server.NewMCPServer(cfg.Server.Name, cfg.Server.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	registry.Register(s)
	return s
}
