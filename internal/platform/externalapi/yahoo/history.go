package yahoo

import (
	"context"
	"net/url"
	"time"

	"market_mcp/internal/feature/marketdata/domain/entity"
	"market_mcp/internal/platform/externalapi/yahoo/dto"
)

// DateLayout is how bar timestamps are rendered, in the exchange's zone.
const DateLayout = "2006-01-02 15:04:05-07:00"

// History はchart APIからOHLCVを取得し、時系列順のCandleとして返します。
// 該当データなしは空スライスで返します。
func (y *YahooMarket) History(ctx context.Context, symbol, period, interval string) ([]entity.Candle, error) {
	q := url.Values{}
	q.Set("range", period)
	q.Set("interval", interval)
	q.Set("includePrePost", "false")
	q.Set("events", "div,splits")

	status, body, err := y.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), q)
	if err != nil {
		return nil, err
	}

	var resp dto.ChartResponse
	if err := decode(body, &resp); err != nil {
		if status >= 400 {
			return nil, apiError(status, "", "")
		}
		return nil, err
	}
	if e := resp.Chart.Error; e != nil {
		// unknown symbol or empty range: let the caller render the no-data shape
		if e.Code == "Not Found" {
			return []entity.Candle{}, nil
		}
		return nil, apiError(status, e.Code, e.Description)
	}
	if status >= 400 {
		return nil, apiError(status, "", "")
	}
	if len(resp.Chart.Result) == 0 {
		return []entity.Candle{}, nil
	}
	return candlesFromChart(resp.Chart.Result[0]), nil
}

func candlesFromChart(res dto.ChartResult) []entity.Candle {
	candles := make([]entity.Candle, 0, len(res.Timestamp))
	if len(res.Indicators.Quote) == 0 {
		return candles
	}
	q := res.Indicators.Quote[0]
	loc := exchangeLocation(res)

	for i, ts := range res.Timestamp {
		o, h, l, c := at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i)
		// OHLCのいずれかが欠損している行はスキップ（0で埋めない）
		if o == nil || h == nil || l == nil || c == nil {
			continue
		}
		candles = append(candles, entity.Candle{
			Date:   time.Unix(ts, 0).In(loc).Format(DateLayout),
			Open:   orZero(o),
			High:   orZero(h),
			Low:    orZero(l),
			Close:  orZero(c),
			Volume: orZero(at(q.Volume, i)),
		})
	}
	return candles
}

func exchangeLocation(res dto.ChartResult) *time.Location {
	if name := res.Meta.ExchangeTimezoneName; name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone("", res.Meta.GMTOffset)
}

func at(s []*float64, i int) *float64 {
	if i < len(s) {
		return s[i]
	}
	return nil
}

func orZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
