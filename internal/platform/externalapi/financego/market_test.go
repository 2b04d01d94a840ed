package financego

import (
	"context"
	"errors"
	"testing"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_mcp/internal/feature/marketdata/domain"
	"market_mcp/internal/feature/marketdata/domain/record"
)

var fixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func newMarket() *FinanceGoMarket {
	return &FinanceGoMarket{now: func() time.Time { return fixedNow }}
}

func TestFinanceGoMarket_Info(t *testing.T) {
	t.Parallel()

	m := newMarket()
	m.getEquity = func(symbol string) (*finance.Equity, error) {
		assert.Equal(t, "AAPL", symbol)
		q := &finance.Equity{}
		q.Symbol = "AAPL"
		q.ShortName = "Apple Inc."
		q.CurrencyID = "USD"
		q.RegularMarketPrice = 152.345
		q.RegularMarketPreviousClose = 150
		q.RegularMarketVolume = 1000
		q.MarketCap = 3_000_000_000_000
		return q, nil
	}

	rec, err := m.Info(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, record.String("Apple Inc."), rec.Lookup("shortName"))
	assert.Equal(t, record.Number(152.345), rec.Lookup("regularMarketPrice"))
	assert.Equal(t, record.Number(150), rec.Lookup("previousClose"))
	assert.Equal(t, record.Number(1000), rec.Lookup("regularMarketVolume"))
	assert.Equal(t, record.Number(3e12), rec.Lookup("marketCap"))
	assert.False(t, rec.Has("trailingPE"), "zero fields are left out")
	assert.False(t, rec.Has("longName"))
}

func TestFinanceGoMarket_Info_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		equity  *finance.Equity
		err     error
		wantErr error
	}{
		{"unknown symbol", nil, nil, domain.ErrNoData},
		{"library failure", nil, errors.New("remote error"), domain.ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMarket()
			m.getEquity = func(string) (*finance.Equity, error) { return tt.equity, tt.err }

			_, err := m.Info(context.Background(), "X")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFinanceGoMarket_History(t *testing.T) {
	t.Parallel()

	m := newMarket()
	m.getBars = func(p *chart.Params) ([]finance.ChartBar, error) {
		assert.Equal(t, "AAPL", p.Symbol)
		assert.Equal(t, "1d", string(p.Interval))
		return []finance.ChartBar{{
			Open:      decimal.RequireFromString("150.1"),
			High:      decimal.RequireFromString("155"),
			Low:       decimal.RequireFromString("149.5"),
			Close:     decimal.RequireFromString("154.25"),
			Volume:    1200,
			Timestamp: 1735828200,
		}}, nil
	}

	candles, err := m.History(context.Background(), "AAPL", "1mo", "1d")
	require.NoError(t, err)
	require.Len(t, candles, 1)

	assert.Equal(t, "2025-01-02 14:30:00+00:00", candles[0].Date)
	assert.Equal(t, 150.1, candles[0].Open)
	assert.Equal(t, 154.25, candles[0].Close)
	assert.Equal(t, 1200.0, candles[0].Volume)
}

func TestFinanceGoMarket_History_Errors(t *testing.T) {
	t.Parallel()

	m := newMarket()
	m.getBars = func(*chart.Params) ([]finance.ChartBar, error) { return nil, errors.New("boom") }

	_, err := m.History(context.Background(), "AAPL", "1mo", "1d")
	assert.ErrorIs(t, err, domain.ErrUpstream)

	_, err = m.History(context.Background(), "AAPL", "forever", "1d")
	assert.Error(t, err)
}

func TestFinanceGoMarket_News(t *testing.T) {
	t.Parallel()

	items, err := newMarket().News(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPeriodStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		period  string
		want    time.Time
		wantErr bool
	}{
		{"5d", fixedNow.AddDate(0, 0, -5), false},
		{"1wk", fixedNow.AddDate(0, 0, -7), false},
		{"3mo", fixedNow.AddDate(0, -3, 0), false},
		{"2y", fixedNow.AddDate(-2, 0, 0), false},
		{"ytd", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), false},
		{"max", time.Unix(0, 0), false},
		{"", time.Time{}, true},
		{"0d", time.Time{}, true},
		{"3h", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			got, err := periodStart(fixedNow, tt.period)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
		})
	}
}
