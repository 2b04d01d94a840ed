// Package dto defines the Yahoo Finance API response payloads.
package dto

import "encoding/json"

// APIError is the error object embedded in every Yahoo envelope.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// QuoteSummaryResponse is the /v10/finance/quoteSummary envelope. Each result
// maps module name to that module's fields; fields are left raw because their
// shapes vary per module and per instrument.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *APIError                    `json:"error"`
	} `json:"quoteSummary"`
}

// ChartResponse is the /v8/finance/chart envelope.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"chart"`
}

type ChartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
		GMTOffset            int    `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// SearchResponse is the /v1/finance/search payload; only news is used.
type SearchResponse struct {
	News []map[string]any `json:"news"`
}
