package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"market_mcp/internal/feature/marketdata/domain/entity"
)

// CompareStocks fetches each of the first MaxCompareSymbols symbols and
// builds one entry per symbol, in input order. A failure for one symbol
// becomes an error entry for that symbol only; the call itself never fails.
func (uc *MarketDataUsecase) CompareStocks(ctx context.Context, symbols []string) entity.CompareResponse {
	if len(symbols) > MaxCompareSymbols {
		symbols = symbols[:MaxCompareSymbols]
	}

	// Each goroutine writes only its own slot, so no locking is needed and
	// output order is input order regardless of completion order.
	entries := make([]entity.CompareEntry, len(symbols))

	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, sym := range symbols {
		g.Go(func() error {
			entries[i] = uc.compareOne(ctx, sym)
			return nil
		})
	}
	_ = g.Wait()

	return entity.CompareResponse{
		Comparison:     entries,
		StocksCompared: len(entries),
	}
}

// compareOne never panics past its own slot: a provider panic is reported as
// that symbol's error.
func (uc *MarketDataUsecase) compareOne(ctx context.Context, symbol string) (entry entity.CompareEntry) {
	upper := strings.ToUpper(symbol)
	defer func() {
		if r := recover(); r != nil {
			uc.log.Error().Str("symbol", upper).Interface("panic", r).Msg("compare: provider panicked")
			entry = entity.CompareEntry{Symbol: upper, Err: fmt.Sprint(r)}
		}
	}()

	rec, err := uc.info(ctx, symbol)
	if err != nil {
		uc.log.Warn().Err(err).Str("symbol", upper).Msg("compare: symbol failed")
		return entity.CompareEntry{Symbol: upper, Err: err.Error()}
	}
	m := AssembleCompareMetrics(symbol, rec)
	return entity.CompareEntry{Symbol: upper, Metrics: &m}
}
