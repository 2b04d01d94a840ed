// Package usecase implements the marketdata tools: one upstream call per
// request followed by a pure assembly step.
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"market_mcp/internal/feature/marketdata/domain"
	"market_mcp/internal/feature/marketdata/domain/entity"
	"market_mcp/internal/feature/marketdata/domain/record"
)

const (
	// DefaultPeriod is the history range used when the caller sends none.
	DefaultPeriod = "1mo"
	// DefaultInterval is the bar size used when the caller sends none.
	DefaultInterval = "1d"
	// DefaultMaxArticles is the news cap used when the caller sends none.
	DefaultMaxArticles = 10
	// MaxArticles is the hard cap on returned news articles.
	MaxArticles = 25
	// MaxCompareSymbols is how many symbols compare_stocks processes; the
	// rest are dropped.
	MaxCompareSymbols = 10
	// DefaultConcurrency bounds parallel upstream calls in compare_stocks.
	DefaultConcurrency = 4
)

//go:generate mockgen -source=marketdata_usecase.go -destination=mocks/mock_market_repository.go -package=mocks

// MarketRepository is the upstream market-data provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// Info returns the flattened quote/fundamentals record for symbol.
	Info(ctx context.Context, symbol string) (record.Record, error)
	// History returns OHLCV bars in chronological order. No bars is an empty
	// slice, not an error.
	History(ctx context.Context, symbol, period, interval string) ([]entity.Candle, error)
	// News returns recent articles, newest first.
	News(ctx context.Context, symbol string) ([]record.Record, error)
}

// MarketDataUsecase serves every tool. It holds no mutable state and is safe
// for concurrent use.
type MarketDataUsecase struct {
	market      MarketRepository
	concurrency int
	log         zerolog.Logger
}

// NewMarketDataUsecase creates a MarketDataUsecase. concurrency <= 0 means
// DefaultConcurrency.
func NewMarketDataUsecase(market MarketRepository, concurrency int, log zerolog.Logger) *MarketDataUsecase {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &MarketDataUsecase{market: market, concurrency: concurrency, log: log}
}

// upstreamSymbol is the form handed to the provider.
func upstreamSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// info fetches the record for symbol. An unknown symbol yields an empty
// record so every field of the response comes out null.
func (uc *MarketDataUsecase) info(ctx context.Context, symbol string) (record.Record, error) {
	rec, err := uc.market.Info(ctx, upstreamSymbol(symbol))
	if errors.Is(err, domain.ErrNoData) {
		uc.log.Debug().Str("symbol", symbol).Msg("no upstream record, returning empty response")
		return record.Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (uc *MarketDataUsecase) GetCurrentQuote(ctx context.Context, symbol string) (entity.QuoteResponse, error) {
	rec, err := uc.info(ctx, symbol)
	if err != nil {
		return entity.QuoteResponse{}, err
	}
	return AssembleQuote(symbol, rec), nil
}

// GetPriceHistory returns entity.HistoryResponse, or entity.NoDataResponse
// when the provider has no bars.
func (uc *MarketDataUsecase) GetPriceHistory(ctx context.Context, symbol, period, interval string) (any, error) {
	if period == "" {
		period = DefaultPeriod
	}
	if interval == "" {
		interval = DefaultInterval
	}

	candles, err := uc.market.History(ctx, upstreamSymbol(symbol), period, interval)
	if err != nil && !errors.Is(err, domain.ErrNoData) {
		return nil, err
	}
	return AssembleHistory(symbol, period, interval, candles), nil
}

func (uc *MarketDataUsecase) GetCompanyProfile(ctx context.Context, symbol string) (entity.CompanyProfileResponse, error) {
	rec, err := uc.info(ctx, symbol)
	if err != nil {
		return entity.CompanyProfileResponse{}, err
	}
	return AssembleCompanyProfile(symbol, rec), nil
}

func (uc *MarketDataUsecase) GetKeyStatistics(ctx context.Context, symbol string) (entity.KeyStatisticsResponse, error) {
	rec, err := uc.info(ctx, symbol)
	if err != nil {
		return entity.KeyStatisticsResponse{}, err
	}
	return AssembleKeyStatistics(symbol, rec), nil
}

func (uc *MarketDataUsecase) GetValuationMetrics(ctx context.Context, symbol string) (entity.ValuationMetricsResponse, error) {
	rec, err := uc.info(ctx, symbol)
	if err != nil {
		return entity.ValuationMetricsResponse{}, err
	}
	return AssembleValuationMetrics(symbol, rec), nil
}

func (uc *MarketDataUsecase) GetFinancialHealth(ctx context.Context, symbol string) (entity.FinancialHealthResponse, error) {
	rec, err := uc.info(ctx, symbol)
	if err != nil {
		return entity.FinancialHealthResponse{}, err
	}
	return AssembleFinancialHealth(symbol, rec), nil
}

func (uc *MarketDataUsecase) GetDividendInfo(ctx context.Context, symbol string) (entity.DividendInfoResponse, error) {
	rec, err := uc.info(ctx, symbol)
	if err != nil {
		return entity.DividendInfoResponse{}, err
	}
	return AssembleDividendInfo(symbol, rec), nil
}

func (uc *MarketDataUsecase) GetAnalystTargets(ctx context.Context, symbol string) (entity.AnalystTargetsResponse, error) {
	rec, err := uc.info(ctx, symbol)
	if err != nil {
		return entity.AnalystTargetsResponse{}, err
	}
	return AssembleAnalystTargets(symbol, rec), nil
}

// GetStockNews returns entity.NewsResponse, or entity.NoNewsResponse when the
// provider has no articles. maxArticles is capped at MaxArticles; negative
// values count as zero.
func (uc *MarketDataUsecase) GetStockNews(ctx context.Context, symbol string, maxArticles int) (any, error) {
	maxArticles = max(0, min(maxArticles, MaxArticles))

	items, err := uc.market.News(ctx, upstreamSymbol(symbol))
	if err != nil && !errors.Is(err, domain.ErrNoData) {
		return nil, err
	}
	return AssembleNews(symbol, items, maxArticles), nil
}
