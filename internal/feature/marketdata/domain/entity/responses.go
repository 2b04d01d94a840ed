package entity

import (
	"encoding/json"

	"github.com/guregu/null/v6"

	"market_mcp/internal/feature/marketdata/domain/record"
)

// Field order in these structs is the wire order. Every field is always
// emitted; unknown values serialize as null.

type QuoteResponse struct {
	Symbol        string       `json:"symbol"`
	Name          record.Value `json:"name"`
	Price         record.Value `json:"price"`
	Change        null.Float   `json:"change"`
	ChangePercent null.Float   `json:"change_percent"`
	PreviousClose record.Value `json:"previous_close"`
	Open          record.Value `json:"open"`
	DayHigh       record.Value `json:"day_high"`
	DayLow        record.Value `json:"day_low"`
	Volume        record.Value `json:"volume"`
	Bid           record.Value `json:"bid"`
	Ask           record.Value `json:"ask"`
	Currency      record.Value `json:"currency"`
}

type HistoryResponse struct {
	Symbol     string         `json:"symbol"`
	Period     string         `json:"period"`
	Interval   string         `json:"interval"`
	DataPoints int            `json:"data_points"`
	History    []HistoryPoint `json:"history"`
}

// NoDataResponse is returned in place of a HistoryResponse when the provider
// has no bars for the symbol.
type NoDataResponse struct {
	Error string `json:"error"`
}

type CompanyProfileResponse struct {
	Symbol      string       `json:"symbol"`
	Name        record.Value `json:"name"`
	Sector      record.Value `json:"sector"`
	Industry    record.Value `json:"industry"`
	Description record.Value `json:"description"`
	Country     record.Value `json:"country"`
	Website     record.Value `json:"website"`
	Employees   record.Value `json:"employees"`
	CEO         record.Value `json:"ceo"`
}

type KeyStatisticsResponse struct {
	Symbol                  string       `json:"symbol"`
	MarketCap               record.Value `json:"market_cap"`
	EnterpriseValue         record.Value `json:"enterprise_value"`
	FiftyTwoWeekHigh        record.Value `json:"fifty_two_week_high"`
	FiftyTwoWeekLow         record.Value `json:"fifty_two_week_low"`
	FiftyDayAverage         record.Value `json:"fifty_day_average"`
	TwoHundredDayAverage    record.Value `json:"two_hundred_day_average"`
	Beta                    record.Value `json:"beta"`
	SharesOutstanding       record.Value `json:"shares_outstanding"`
	FloatShares             record.Value `json:"float_shares"`
	ShortRatio              record.Value `json:"short_ratio"`
	ShortPercentOfFloat     record.Value `json:"short_percent_of_float"`
	HeldPercentInsiders     record.Value `json:"held_percent_insiders"`
	HeldPercentInstitutions record.Value `json:"held_percent_institutions"`
}

type ValuationMetricsResponse struct {
	Symbol              string       `json:"symbol"`
	TrailingPE          record.Value `json:"trailing_pe"`
	ForwardPE           record.Value `json:"forward_pe"`
	PEGRatio            record.Value `json:"peg_ratio"`
	PriceToBook         record.Value `json:"price_to_book"`
	PriceToSales        record.Value `json:"price_to_sales"`
	EnterpriseToRevenue record.Value `json:"enterprise_to_revenue"`
	EnterpriseToEBITDA  record.Value `json:"enterprise_to_ebitda"`
	TrailingEPS         record.Value `json:"trailing_eps"`
	ForwardEPS          record.Value `json:"forward_eps"`
	BookValue           record.Value `json:"book_value"`
}

type FinancialHealthResponse struct {
	Symbol            string       `json:"symbol"`
	ProfitMargin      record.Value `json:"profit_margin"`
	OperatingMargin   record.Value `json:"operating_margin"`
	GrossMargin       record.Value `json:"gross_margin"`
	ReturnOnEquity    record.Value `json:"return_on_equity"`
	ReturnOnAssets    record.Value `json:"return_on_assets"`
	DebtToEquity      record.Value `json:"debt_to_equity"`
	CurrentRatio      record.Value `json:"current_ratio"`
	QuickRatio        record.Value `json:"quick_ratio"`
	TotalRevenue      record.Value `json:"total_revenue"`
	RevenueGrowth     record.Value `json:"revenue_growth"`
	EarningsGrowth    record.Value `json:"earnings_growth"`
	EBITDA            record.Value `json:"ebitda"`
	FreeCashFlow      record.Value `json:"free_cash_flow"`
	OperatingCashFlow record.Value `json:"operating_cash_flow"`
	TotalCash         record.Value `json:"total_cash"`
	TotalDebt         record.Value `json:"total_debt"`
}

type DividendInfoResponse struct {
	Symbol                      string       `json:"symbol"`
	DividendYield               record.Value `json:"dividend_yield"`
	DividendRate                record.Value `json:"dividend_rate"`
	PayoutRatio                 record.Value `json:"payout_ratio"`
	ExDividendDate              record.Value `json:"ex_dividend_date"`
	LastDividendValue           record.Value `json:"last_dividend_value"`
	LastDividendDate            record.Value `json:"last_dividend_date"`
	FiveYearAvgDividendYield    record.Value `json:"five_year_avg_dividend_yield"`
	TrailingAnnualDividendRate  record.Value `json:"trailing_annual_dividend_rate"`
	TrailingAnnualDividendYield record.Value `json:"trailing_annual_dividend_yield"`
}

// AnalystTargetsResponse omits upside_percent entirely when it cannot be
// computed; it is the only optional key in any response.
type AnalystTargetsResponse struct {
	Symbol             string       `json:"symbol"`
	Recommendation     record.Value `json:"recommendation"`
	RecommendationMean record.Value `json:"recommendation_mean"`
	NumberOfAnalysts   record.Value `json:"number_of_analysts"`
	TargetHigh         record.Value `json:"target_high"`
	TargetLow          record.Value `json:"target_low"`
	TargetMean         record.Value `json:"target_mean"`
	TargetMedian       record.Value `json:"target_median"`
	CurrentPrice       record.Value `json:"current_price"`
	UpsidePercent      null.Float   `json:"upside_percent,omitzero"`
}

type Article struct {
	Title     record.Value `json:"title"`
	Publisher record.Value `json:"publisher"`
	Link      record.Value `json:"link"`
	Published record.Value `json:"published"`
}

type NewsResponse struct {
	Symbol       string    `json:"symbol"`
	ArticleCount int       `json:"article_count"`
	Articles     []Article `json:"articles"`
}

// NoNewsResponse is returned in place of a NewsResponse when the provider has
// no articles for the symbol.
type NoNewsResponse struct {
	Message string `json:"message"`
}

type CompareMetrics struct {
	Symbol            string       `json:"symbol"`
	Name              record.Value `json:"name"`
	Price             record.Value `json:"price"`
	MarketCap         record.Value `json:"market_cap"`
	PERatio           record.Value `json:"pe_ratio"`
	ForwardPE         record.Value `json:"forward_pe"`
	DividendYield     record.Value `json:"dividend_yield"`
	Beta              record.Value `json:"beta"`
	FiftyTwoWeekHigh  record.Value `json:"fifty_two_week_high"`
	FiftyTwoWeekLow   record.Value `json:"fifty_two_week_low"`
	PercentFrom52WLow null.Float   `json:"percent_from_52w_low"`
	ProfitMargin      record.Value `json:"profit_margin"`
	RevenueGrowth     record.Value `json:"revenue_growth"`
}

// CompareEntry is one slot of a comparison: either Metrics is set, or Err
// carries the failure for Symbol.
type CompareEntry struct {
	Symbol  string
	Metrics *CompareMetrics
	Err     string
}

// Failed reports whether the entry is the error variant.
func (e CompareEntry) Failed() bool { return e.Metrics == nil }

type compareError struct {
	Symbol string `json:"symbol"`
	Error  string `json:"error"`
}

// MarshalJSON emits either the metrics object or {symbol, error}.
func (e CompareEntry) MarshalJSON() ([]byte, error) {
	if e.Metrics != nil {
		return json.Marshal(e.Metrics)
	}
	return json.Marshal(compareError{Symbol: e.Symbol, Error: e.Err})
}

type CompareResponse struct {
	Comparison     []CompareEntry `json:"comparison"`
	StocksCompared int            `json:"stocks_compared"`
}
