package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"market_mcp/internal/feature/marketdata/domain"
	"market_mcp/internal/feature/marketdata/domain/entity"
	"market_mcp/internal/feature/marketdata/domain/record"
	"market_mcp/internal/feature/marketdata/usecase"
	"market_mcp/internal/feature/marketdata/usecase/mocks"
)

// ErrProvider is shared between mocks and expectations.
var ErrProvider = errors.New("provider unavailable")

func newUsecase(t *testing.T) (*usecase.MarketDataUsecase, *mocks.MockMarketRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMarketRepository(ctrl)
	return usecase.NewMarketDataUsecase(repo, 3, zerolog.Nop()), repo
}

func priced(price float64) record.Record {
	return record.Record{
		"currentPrice":    record.Number(price),
		"fiftyTwoWeekLow": record.Number(price / 1.5),
	}
}

func TestMarketDataUsecase_GetCurrentQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("success: symbol is normalized before the upstream call", func(t *testing.T) {
		uc, repo := newUsecase(t)
		repo.EXPECT().Info(gomock.Any(), "AAPL").Return(record.Record{
			"currentPrice":  record.Number(152.345),
			"previousClose": record.Number(150),
		}, nil)

		resp, err := uc.GetCurrentQuote(ctx, " aapl ")
		require.NoError(t, err)
		assert.Equal(t, 2.35, resp.Change.Float64)
		assert.Equal(t, 1.57, resp.ChangePercent.Float64)
	})

	t.Run("error: upstream failure propagates", func(t *testing.T) {
		uc, repo := newUsecase(t)
		repo.EXPECT().Info(gomock.Any(), "AAPL").Return(nil, ErrProvider)

		_, err := uc.GetCurrentQuote(ctx, "aapl")
		assert.ErrorIs(t, err, ErrProvider)
	})

	t.Run("unknown symbol yields all-null response", func(t *testing.T) {
		uc, repo := newUsecase(t)
		repo.EXPECT().Info(gomock.Any(), "NOPE").Return(nil, fmt.Errorf("yahoo: %w", domain.ErrNoData))

		resp, err := uc.GetCurrentQuote(ctx, "nope")
		require.NoError(t, err)
		assert.Equal(t, "NOPE", resp.Symbol)
		assert.True(t, resp.Price.IsNull())
		assert.False(t, resp.Change.Valid)
	})
}

func TestMarketDataUsecase_SingleSymbolTools_PropagateErrors(t *testing.T) {
	ctx := context.Background()

	calls := map[string]func(uc *usecase.MarketDataUsecase) error{
		"profile":   func(uc *usecase.MarketDataUsecase) error { _, err := uc.GetCompanyProfile(ctx, "x"); return err },
		"stats":     func(uc *usecase.MarketDataUsecase) error { _, err := uc.GetKeyStatistics(ctx, "x"); return err },
		"valuation": func(uc *usecase.MarketDataUsecase) error { _, err := uc.GetValuationMetrics(ctx, "x"); return err },
		"health":    func(uc *usecase.MarketDataUsecase) error { _, err := uc.GetFinancialHealth(ctx, "x"); return err },
		"dividend":  func(uc *usecase.MarketDataUsecase) error { _, err := uc.GetDividendInfo(ctx, "x"); return err },
		"analyst":   func(uc *usecase.MarketDataUsecase) error { _, err := uc.GetAnalystTargets(ctx, "x"); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			uc, repo := newUsecase(t)
			repo.EXPECT().Info(gomock.Any(), "X").Return(nil, ErrProvider)
			assert.ErrorIs(t, call(uc), ErrProvider)
		})
	}
}

func TestMarketDataUsecase_GetPriceHistory(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name             string
		inputPeriod      string
		inputInterval    string
		expectedPeriod   string
		expectedInterval string
		candles          []entity.Candle
		repoErr          error
		expectedType     any
		expectedErr      error
	}{
		{
			name:             "success: defaults applied",
			expectedPeriod:   "1mo",
			expectedInterval: "1d",
			candles:          []entity.Candle{{Date: "2025-01-02", Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10}},
			expectedType:     entity.HistoryResponse{},
		},
		{
			name:             "success: explicit period and interval",
			inputPeriod:      "5d",
			inputInterval:    "1h",
			expectedPeriod:   "5d",
			expectedInterval: "1h",
			candles:          []entity.Candle{{Date: "2025-01-02 09:30:00-05:00", Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10}},
			expectedType:     entity.HistoryResponse{},
		},
		{
			name:             "empty: no-data shape",
			expectedPeriod:   "1mo",
			expectedInterval: "1d",
			expectedType:     entity.NoDataResponse{},
		},
		{
			name:             "no data sentinel: no-data shape",
			expectedPeriod:   "1mo",
			expectedInterval: "1d",
			repoErr:          domain.ErrNoData,
			expectedType:     entity.NoDataResponse{},
		},
		{
			name:             "error: upstream failure",
			expectedPeriod:   "1mo",
			expectedInterval: "1d",
			repoErr:          ErrProvider,
			expectedErr:      ErrProvider,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo := newUsecase(t)
			repo.EXPECT().History(gomock.Any(), "AAPL", tc.expectedPeriod, tc.expectedInterval).Return(tc.candles, tc.repoErr)

			got, err := uc.GetPriceHistory(ctx, "aapl", tc.inputPeriod, tc.inputInterval)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tc.expectedType, got)
		})
	}
}

func TestMarketDataUsecase_GetStockNews(t *testing.T) {
	ctx := context.Background()

	items := make([]record.Record, 30)
	for i := range items {
		items[i] = record.Record{"title": record.String(fmt.Sprintf("t%d", i))}
	}

	testCases := []struct {
		name      string
		max       int
		wantCount int
	}{
		{"default cap", 10, 10},
		{"above hard cap", 100, 25},
		{"negative clamps to zero", -3, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo := newUsecase(t)
			repo.EXPECT().News(gomock.Any(), "AAPL").Return(items, nil)

			got, err := uc.GetStockNews(ctx, "aapl", tc.max)
			require.NoError(t, err)
			resp, ok := got.(entity.NewsResponse)
			require.True(t, ok)
			assert.Equal(t, tc.wantCount, resp.ArticleCount)
			assert.Len(t, resp.Articles, tc.wantCount)
		})
	}

	t.Run("no news", func(t *testing.T) {
		uc, repo := newUsecase(t)
		repo.EXPECT().News(gomock.Any(), "AAPL").Return(nil, nil)

		got, err := uc.GetStockNews(ctx, "aapl", 10)
		require.NoError(t, err)
		assert.Equal(t, entity.NoNewsResponse{Message: "No recent news found for aapl"}, got)
	})

	t.Run("error: upstream failure", func(t *testing.T) {
		uc, repo := newUsecase(t)
		repo.EXPECT().News(gomock.Any(), "AAPL").Return(nil, ErrProvider)

		_, err := uc.GetStockNews(ctx, "aapl", 10)
		assert.ErrorIs(t, err, ErrProvider)
	})
}

func TestMarketDataUsecase_CompareStocks_TruncatesAndKeepsOrder(t *testing.T) {
	uc, repo := newUsecase(t)

	symbols := make([]string, 15)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("s%02d", i)
	}
	for i := 0; i < usecase.MaxCompareSymbols; i++ {
		repo.EXPECT().Info(gomock.Any(), fmt.Sprintf("S%02d", i)).Return(priced(float64(100+i)), nil)
	}

	resp := uc.CompareStocks(context.Background(), symbols)

	assert.Equal(t, 10, resp.StocksCompared)
	require.Len(t, resp.Comparison, 10)
	for i, e := range resp.Comparison {
		assert.Equal(t, fmt.Sprintf("S%02d", i), e.Symbol)
		require.False(t, e.Failed())
		assert.Equal(t, record.Number(float64(100+i)), e.Metrics.Price)
	}
}

func TestMarketDataUsecase_CompareStocks_IsolatesFailures(t *testing.T) {
	uc, repo := newUsecase(t)

	repo.EXPECT().Info(gomock.Any(), "AAPL").Return(priced(150), nil)
	repo.EXPECT().Info(gomock.Any(), "MSFT").Return(priced(400), nil)
	repo.EXPECT().Info(gomock.Any(), "BAD").Return(nil, ErrProvider)
	repo.EXPECT().Info(gomock.Any(), "GOOGL").Return(priced(170), nil)
	repo.EXPECT().Info(gomock.Any(), "AMZN").Return(priced(180), nil)

	resp := uc.CompareStocks(context.Background(), []string{"aapl", "msft", "bad", "googl", "amzn"})

	assert.Equal(t, 5, resp.StocksCompared)
	require.Len(t, resp.Comparison, 5)

	failed := 0
	for _, e := range resp.Comparison {
		if e.Failed() {
			failed++
		}
	}
	assert.Equal(t, 1, failed)

	bad := resp.Comparison[2]
	assert.True(t, bad.Failed())
	assert.Equal(t, "BAD", bad.Symbol)
	assert.Equal(t, ErrProvider.Error(), bad.Err)

	b, err := json.Marshal(bad)
	require.NoError(t, err)
	assert.JSONEq(t, `{"symbol":"BAD","error":"provider unavailable"}`, string(b))

	assert.Equal(t, 50.0, resp.Comparison[0].Metrics.PercentFrom52WLow.Float64)
	assert.Equal(t, "GOOGL", resp.Comparison[3].Symbol)
}

func TestMarketDataUsecase_CompareStocks_Empty(t *testing.T) {
	uc, _ := newUsecase(t)

	resp := uc.CompareStocks(context.Background(), nil)
	assert.Equal(t, 0, resp.StocksCompared)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"comparison":[],"stocks_compared":0}`, string(b))
}
