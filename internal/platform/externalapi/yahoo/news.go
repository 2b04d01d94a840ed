package yahoo

import (
	"context"
	"net/url"
	"strconv"

	"market_mcp/internal/feature/marketdata/domain/record"
	"market_mcp/internal/platform/externalapi/yahoo/dto"
)

// NewsCount is how many articles are requested from the search API.
const NewsCount = 25

// News returns the search API's news items for symbol, newest first as
// Yahoo orders them.
func (y *YahooMarket) News(ctx context.Context, symbol string) ([]record.Record, error) {
	q := url.Values{}
	q.Set("q", symbol)
	q.Set("quotesCount", "0")
	q.Set("newsCount", strconv.Itoa(NewsCount))

	status, body, err := y.get(ctx, "/v1/finance/search", q)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, apiError(status, "", "")
	}

	var resp dto.SearchResponse
	if err := decodeNumbers(body, &resp); err != nil {
		return nil, err
	}

	items := make([]record.Record, 0, len(resp.News))
	for _, n := range resp.News {
		items = append(items, record.FromMap(n))
	}
	return items, nil
}
