package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"market_mcp/internal/feature/marketdata/domain"
	"market_mcp/internal/feature/marketdata/domain/record"
	"market_mcp/internal/platform/externalapi/yahoo/dto"
)

// summaryModules are the quoteSummary modules merged into one info record.
var summaryModules = []string{
	"assetProfile",
	"summaryDetail",
	"financialData",
	"defaultKeyStatistics",
	"price",
	"quoteType",
}

// Info はquoteSummary APIから銘柄情報を取得し、全モジュールを1つのRecordに平坦化します。
func (y *YahooMarket) Info(ctx context.Context, symbol string) (record.Record, error) {
	status, body, err := y.quoteSummary(ctx, symbol)
	if err != nil {
		return nil, err
	}
	// crumbの期限切れ: 破棄して次回の呼び出しで取り直す（再試行はしない）
	if status == http.StatusUnauthorized {
		y.log.Warn().Str("symbol", symbol).Msg("yahoo rejected crumb, dropping session")
		y.dropCrumb()
	}

	var resp dto.QuoteSummaryResponse
	if err := decode(body, &resp); err != nil {
		if status >= 400 {
			return nil, apiError(status, "", "")
		}
		return nil, err
	}
	if e := resp.QuoteSummary.Error; e != nil {
		return nil, apiError(status, e.Code, e.Description)
	}
	if status >= 400 {
		return nil, apiError(status, "", "")
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: quoteSummary %s: %w", symbol, domain.ErrNoData)
	}

	return flattenModules(resp.QuoteSummary.Result[0])
}

func (y *YahooMarket) quoteSummary(ctx context.Context, symbol string) (int, []byte, error) {
	crumb, err := y.sessionCrumb(ctx)
	if err != nil {
		return 0, nil, err
	}
	q := url.Values{}
	q.Set("modules", strings.Join(summaryModules, ","))
	q.Set("crumb", crumb)
	return y.get(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(symbol), q)
}

// flattenModules merges the module objects in summaryModules order, so a
// later module wins on a shared key.
func flattenModules(modules map[string]json.RawMessage) (record.Record, error) {
	out := record.Record{}
	for _, name := range summaryModules {
		raw, ok := modules[name]
		if !ok || len(raw) == 0 {
			continue
		}
		var fields map[string]any
		if err := decodeNumbers(raw, &fields); err != nil {
			return nil, fmt.Errorf("yahoo decode module %s: %w", name, err)
		}
		for k, v := range fields {
			out[k] = record.FromAny(unwrap(v))
		}
	}
	return out, nil
}

// unwrap collapses Yahoo's formatted-number objects. {"raw": x, "fmt": ...}
// becomes x and {} becomes null; lists and other objects are unwrapped
// element by element.
func unwrap(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 0 {
			return nil
		}
		if raw, ok := t["raw"]; ok {
			return raw
		}
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = unwrap(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = unwrap(e)
		}
		return s
	default:
		return v
	}
}

func decodeNumbers(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}
