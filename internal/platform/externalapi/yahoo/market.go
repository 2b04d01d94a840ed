package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"market_mcp/internal/feature/marketdata/domain"
	"market_mcp/internal/feature/marketdata/usecase"
)

// YahooMarket is the MarketRepository backed by the Yahoo Finance query API.
type YahooMarket struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger

	mu    sync.Mutex
	crumb string
}

// YahooMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket creates a YahooMarket. The client is copied and given a
// cookie jar if it has none, since quoteSummary requires a session cookie.
func NewYahooMarket(cfg Config, client *http.Client, log zerolog.Logger) *YahooMarket {
	c := *client
	if c.Jar == nil {
		jar, _ := cookiejar.New(nil)
		c.Jar = jar
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout > 0 {
		c.Timeout = cfg.Timeout
	}
	return &YahooMarket{cfg: cfg, client: &c, log: log}
}

// get issues a GET against the query host and returns the status and body.
// Any status is returned to the caller; only transport errors fail here.
func (y *YahooMarket) get(ctx context.Context, path string, q url.Values) (int, []byte, error) {
	u := y.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", y.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := y.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			y.log.Warn().Err(err).Str("path", path).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("yahoo read body: %w", err)
	}
	return res.StatusCode, body, nil
}

// sessionCrumb returns the crumb token, fetching the cookie and crumb on first
// use. The crumb is kept until Yahoo rejects it.
func (y *YahooMarket) sessionCrumb(ctx context.Context) (string, error) {
	y.mu.Lock()
	defer y.mu.Unlock()
	if y.crumb != "" {
		return y.crumb, nil
	}

	if y.cfg.CookieURL != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.cfg.CookieURL, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", y.cfg.UserAgent)
		// fc.yahoo.com answers 404 but still sets the cookie.
		res, err := y.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("yahoo cookie: %w", err)
		}
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}

	status, body, err := y.get(ctx, "/v1/test/getcrumb", nil)
	if err != nil {
		return "", err
	}
	crumb := strings.TrimSpace(string(body))
	if status != http.StatusOK || crumb == "" || strings.HasPrefix(crumb, "{") || strings.HasPrefix(crumb, "<") {
		return "", fmt.Errorf("%w: crumb http %d", domain.ErrUpstream, status)
	}
	y.crumb = crumb
	y.log.Debug().Msg("yahoo session crumb acquired")
	return crumb, nil
}

func (y *YahooMarket) dropCrumb() {
	y.mu.Lock()
	y.crumb = ""
	y.mu.Unlock()
}

// apiError maps an error payload or status to a domain error.
func apiError(status int, code, description string) error {
	if strings.EqualFold(code, "Not Found") || status == http.StatusNotFound {
		if description == "" {
			description = "not found"
		}
		return fmt.Errorf("yahoo: %s: %w", description, domain.ErrNoData)
	}
	if description == "" {
		description = http.StatusText(status)
	}
	return fmt.Errorf("%w: yahoo http %d: %s", domain.ErrUpstream, status, description)
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}
