// Package financego adapts github.com/piquette/finance-go to the marketdata
// MarketRepository. It serves quote-level fields and price history only:
// the library exposes no fundamentals modules and no news.
package financego

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"

	"market_mcp/internal/feature/marketdata/domain"
	"market_mcp/internal/feature/marketdata/domain/entity"
	"market_mcp/internal/feature/marketdata/domain/record"
	"market_mcp/internal/feature/marketdata/usecase"
)

// DateLayout matches the yahoo adapter's bar labels. Bars are labelled in UTC.
const DateLayout = "2006-01-02 15:04:05-07:00"

// FinanceGoMarket はfinance-goライブラリ経由で株価データを取得するMarketRepository実装です。
type FinanceGoMarket struct {
	getEquity func(symbol string) (*finance.Equity, error)
	getBars   func(p *chart.Params) ([]finance.ChartBar, error)
	now       func() time.Time
}

// FinanceGoMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*FinanceGoMarket)(nil)

// NewFinanceGoMarket installs client as finance-go's process-wide HTTP
// client and returns the adapter.
func NewFinanceGoMarket(client *http.Client) *FinanceGoMarket {
	if client != nil {
		finance.SetHTTPClient(client)
	}
	return &FinanceGoMarket{
		getEquity: equity.Get,
		getBars:   collectBars,
		now:       time.Now,
	}
}

func collectBars(p *chart.Params) ([]finance.ChartBar, error) {
	iter := chart.Get(p)
	var bars []finance.ChartBar
	for iter.Next() {
		bars = append(bars, *iter.Bar())
	}
	return bars, iter.Err()
}

// Info returns the quote-level fields of symbol under the same keys the
// yahoo adapter produces. Zero values are left out since finance-go cannot
// tell zero from missing.
func (m *FinanceGoMarket) Info(ctx context.Context, symbol string) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q, err := m.getEquity(symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: finance-go quote %s: %v", domain.ErrUpstream, symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("finance-go quote %s: %w", symbol, domain.ErrNoData)
	}
	return equityRecord(q), nil
}

func equityRecord(q *finance.Equity) record.Record {
	r := record.Record{}
	str := func(k, v string) {
		if v != "" {
			r[k] = record.String(v)
		}
	}
	num := func(k string, v float64) {
		if v != 0 {
			r[k] = record.Number(v)
		}
	}

	str("symbol", q.Symbol)
	str("shortName", q.ShortName)
	str("longName", q.LongName)
	str("currency", q.CurrencyID)

	num("regularMarketPrice", q.RegularMarketPrice)
	num("previousClose", q.RegularMarketPreviousClose)
	num("regularMarketOpen", q.RegularMarketOpen)
	num("regularMarketDayHigh", q.RegularMarketDayHigh)
	num("regularMarketDayLow", q.RegularMarketDayLow)
	num("regularMarketVolume", float64(q.RegularMarketVolume))
	num("bid", q.Bid)
	num("ask", q.Ask)
	num("fiftyTwoWeekHigh", q.FiftyTwoWeekHigh)
	num("fiftyTwoWeekLow", q.FiftyTwoWeekLow)
	num("fiftyDayAverage", q.FiftyDayAverage)
	num("twoHundredDayAverage", q.TwoHundredDayAverage)

	num("marketCap", float64(q.MarketCap))
	num("trailingPE", q.TrailingPE)
	num("forwardPE", q.ForwardPE)
	num("trailingEps", q.EpsTrailingTwelveMonths)
	num("forwardEps", q.EpsForward)
	num("sharesOutstanding", float64(q.SharesOutstanding))
	num("bookValue", q.BookValue)
	num("priceToBook", q.PriceToBook)
	num("dividendRate", q.TrailingAnnualDividendRate)
	num("trailingAnnualDividendYield", q.TrailingAnnualDividendYield)
	return r
}

// History returns bars for the range named by period, e.g. "5d" or "1y".
func (m *FinanceGoMarket) History(ctx context.Context, symbol, period, interval string) ([]entity.Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start, err := periodStart(m.now(), period)
	if err != nil {
		return nil, err
	}
	end := m.now()

	bars, err := m.getBars(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.Interval(interval),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: finance-go chart %s: %v", domain.ErrUpstream, symbol, err)
	}

	candles := make([]entity.Candle, 0, len(bars))
	for _, b := range bars {
		candles = append(candles, entity.Candle{
			Date:   time.Unix(int64(b.Timestamp), 0).UTC().Format(DateLayout),
			Open:   b.Open.InexactFloat64(),
			High:   b.High.InexactFloat64(),
			Low:    b.Low.InexactFloat64(),
			Close:  b.Close.InexactFloat64(),
			Volume: float64(b.Volume),
		})
	}
	return candles, nil
}

// News is unsupported by finance-go; an empty list renders as "no news".
func (m *FinanceGoMarket) News(ctx context.Context, symbol string) ([]record.Record, error) {
	return []record.Record{}, ctx.Err()
}

// periodStart converts a Yahoo range string into the start of the window.
func periodStart(now time.Time, period string) (time.Time, error) {
	p := strings.ToLower(strings.TrimSpace(period))
	switch p {
	case "ytd":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), nil
	case "max":
		return time.Unix(0, 0), nil
	}

	var n int
	var unit string
	if _, err := fmt.Sscanf(p, "%d%s", &n, &unit); err != nil || n <= 0 {
		return time.Time{}, fmt.Errorf("invalid period %q", period)
	}
	switch unit {
	case "d":
		return now.AddDate(0, 0, -n), nil
	case "wk":
		return now.AddDate(0, 0, -7*n), nil
	case "mo":
		return now.AddDate(0, -n, 0), nil
	case "y":
		return now.AddDate(-n, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("invalid period %q", period)
	}
}
