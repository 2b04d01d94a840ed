// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"market_mcp/internal/feature/marketdata/usecase"
	"market_mcp/internal/platform/config"
	"market_mcp/internal/platform/externalapi/financego"
	"market_mcp/internal/platform/externalapi/yahoo"
	infrahttp "market_mcp/internal/platform/http"
)

// NewMarket creates the upstream MarketRepository selected by
// upstream.provider, backed by a tuned HTTP client.
func NewMarket(cfg *config.Config, log zerolog.Logger) (usecase.MarketRepository, error) {
	httpClient := infrahttp.NewHTTPClient(cfg.Upstream.Timeout, log.With().Str("component", "upstream").Logger())

	switch cfg.Upstream.Provider {
	case config.ProviderYahoo:
		ycfg := yahoo.DefaultConfig()
		if cfg.Upstream.BaseURL != "" && cfg.Upstream.BaseURL != yahoo.DefaultBaseURL {
			ycfg.BaseURL = cfg.Upstream.BaseURL
			// a non-default host is a proxy or test double; it serves the cookie itself
			ycfg.CookieURL = ""
		}
		if cfg.Upstream.UserAgent != "" {
			ycfg.UserAgent = cfg.Upstream.UserAgent
		}
		ycfg.Timeout = cfg.Upstream.Timeout
		return yahoo.NewYahooMarket(ycfg, httpClient, log.With().Str("component", "yahoo").Logger()), nil
	case config.ProviderFinanceGo:
		return financego.NewFinanceGoMarket(httpClient), nil
	default:
		return nil, fmt.Errorf("unknown upstream provider %q", cfg.Upstream.Provider)
	}
}
