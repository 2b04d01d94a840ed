package usecase

import (
	"fmt"
	"strings"

	"market_mcp/internal/feature/marketdata/domain/entity"
	"market_mcp/internal/feature/marketdata/domain/metrics"
	"market_mcp/internal/feature/marketdata/domain/record"
)

// Assemblers map an upstream record to a tool response. They are pure: the
// same inputs always produce the same response, and a missing field is never
// an error.

var (
	notAvailable = record.String("N/A")
	usd          = record.String("USD")
)

// currentPrice is the fallback chain shared by quote, analyst and compare.
func currentPrice(r record.Record) record.Value {
	return r.LookupAny("currentPrice", "regularMarketPrice")
}

// AssembleQuote builds the get_current_quote response.
func AssembleQuote(symbol string, r record.Record) entity.QuoteResponse {
	price := currentPrice(r)
	prevClose := r.Lookup("previousClose")

	resp := entity.QuoteResponse{
		Symbol:        strings.ToUpper(symbol),
		Name:          r.LookupOr("shortName", notAvailable),
		Price:         price,
		PreviousClose: prevClose,
		Open:          r.LookupAny("open", "regularMarketOpen"),
		DayHigh:       r.LookupAny("dayHigh", "regularMarketDayHigh"),
		DayLow:        r.LookupAny("dayLow", "regularMarketDayLow"),
		Volume:        r.LookupAny("volume", "regularMarketVolume"),
		Bid:           r.Lookup("bid"),
		Ask:           r.Lookup("ask"),
		Currency:      r.LookupOr("currency", usd),
	}

	// A zero price or zero previous close means the market has no usable
	// session data; both derived fields stay null.
	if price.Truthy() && prevClose.Truthy() {
		resp.Change = metrics.Change(price.NullFloat(), prevClose.NullFloat())
		resp.ChangePercent = metrics.ChangePercent(resp.Change, prevClose.NullFloat())
	}
	return resp
}

// AssembleHistory builds the get_price_history response, or the no-data shape
// when candles is empty.
func AssembleHistory(symbol, period, interval string, candles []entity.Candle) any {
	if len(candles) == 0 {
		return entity.NoDataResponse{Error: fmt.Sprintf("No historical data found for %s", symbol)}
	}

	points := make([]entity.HistoryPoint, 0, len(candles))
	for _, c := range candles {
		points = append(points, entity.HistoryPoint{
			Date:   c.Date,
			Open:   metrics.Round(c.Open),
			High:   metrics.Round(c.High),
			Low:    metrics.Round(c.Low),
			Close:  metrics.Round(c.Close),
			Volume: int64(c.Volume),
		})
	}

	return entity.HistoryResponse{
		Symbol:     strings.ToUpper(symbol),
		Period:     period,
		Interval:   interval,
		DataPoints: len(points),
		History:    points,
	}
}

// AssembleCompanyProfile builds the get_company_profile response.
func AssembleCompanyProfile(symbol string, r record.Record) entity.CompanyProfileResponse {
	name := r.Lookup("longName")
	if !name.Truthy() {
		name = r.LookupOr("shortName", notAvailable)
	}

	return entity.CompanyProfileResponse{
		Symbol:      strings.ToUpper(symbol),
		Name:        name,
		Sector:      r.LookupOr("sector", notAvailable),
		Industry:    r.LookupOr("industry", notAvailable),
		Description: r.LookupOr("longBusinessSummary", notAvailable),
		Country:     r.LookupOr("country", notAvailable),
		Website:     r.LookupOr("website", notAvailable),
		Employees:   r.Lookup("fullTimeEmployees"),
		CEO:         firstOfficerName(r),
	}
}

func firstOfficerName(r record.Record) record.Value {
	officers := r.Lookup("companyOfficers").Items()
	if len(officers) == 0 {
		return notAvailable
	}
	first, ok := officers[0].Record()
	if !ok {
		return record.Null
	}
	return first.Lookup("name")
}

// AssembleKeyStatistics builds the get_key_statistics response.
func AssembleKeyStatistics(symbol string, r record.Record) entity.KeyStatisticsResponse {
	return entity.KeyStatisticsResponse{
		Symbol:                  strings.ToUpper(symbol),
		MarketCap:               r.Lookup("marketCap"),
		EnterpriseValue:         r.Lookup("enterpriseValue"),
		FiftyTwoWeekHigh:        r.Lookup("fiftyTwoWeekHigh"),
		FiftyTwoWeekLow:         r.Lookup("fiftyTwoWeekLow"),
		FiftyDayAverage:         r.Lookup("fiftyDayAverage"),
		TwoHundredDayAverage:    r.Lookup("twoHundredDayAverage"),
		Beta:                    r.Lookup("beta"),
		SharesOutstanding:       r.Lookup("sharesOutstanding"),
		FloatShares:             r.Lookup("floatShares"),
		ShortRatio:              r.Lookup("shortRatio"),
		ShortPercentOfFloat:     r.Lookup("shortPercentOfFloat"),
		HeldPercentInsiders:     r.Lookup("heldPercentInsiders"),
		HeldPercentInstitutions: r.Lookup("heldPercentInstitutions"),
	}
}

// AssembleValuationMetrics builds the get_valuation_metrics response.
func AssembleValuationMetrics(symbol string, r record.Record) entity.ValuationMetricsResponse {
	return entity.ValuationMetricsResponse{
		Symbol:              strings.ToUpper(symbol),
		TrailingPE:          r.Lookup("trailingPE"),
		ForwardPE:           r.Lookup("forwardPE"),
		PEGRatio:            r.Lookup("pegRatio"),
		PriceToBook:         r.Lookup("priceToBook"),
		PriceToSales:        r.Lookup("priceToSalesTrailing12Months"),
		EnterpriseToRevenue: r.Lookup("enterpriseToRevenue"),
		EnterpriseToEBITDA:  r.Lookup("enterpriseToEbitda"),
		TrailingEPS:         r.Lookup("trailingEps"),
		ForwardEPS:          r.Lookup("forwardEps"),
		BookValue:           r.Lookup("bookValue"),
	}
}

// AssembleFinancialHealth builds the get_financial_health response.
func AssembleFinancialHealth(symbol string, r record.Record) entity.FinancialHealthResponse {
	return entity.FinancialHealthResponse{
		Symbol:            strings.ToUpper(symbol),
		ProfitMargin:      r.Lookup("profitMargins"),
		OperatingMargin:   r.Lookup("operatingMargins"),
		GrossMargin:       r.Lookup("grossMargins"),
		ReturnOnEquity:    r.Lookup("returnOnEquity"),
		ReturnOnAssets:    r.Lookup("returnOnAssets"),
		DebtToEquity:      r.Lookup("debtToEquity"),
		CurrentRatio:      r.Lookup("currentRatio"),
		QuickRatio:        r.Lookup("quickRatio"),
		TotalRevenue:      r.Lookup("totalRevenue"),
		RevenueGrowth:     r.Lookup("revenueGrowth"),
		EarningsGrowth:    r.Lookup("earningsGrowth"),
		EBITDA:            r.Lookup("ebitda"),
		FreeCashFlow:      r.Lookup("freeCashflow"),
		OperatingCashFlow: r.Lookup("operatingCashflow"),
		TotalCash:         r.Lookup("totalCash"),
		TotalDebt:         r.Lookup("totalDebt"),
	}
}

// AssembleDividendInfo builds the get_dividend_info response.
func AssembleDividendInfo(symbol string, r record.Record) entity.DividendInfoResponse {
	return entity.DividendInfoResponse{
		Symbol:                      strings.ToUpper(symbol),
		DividendYield:               r.Lookup("dividendYield"),
		DividendRate:                r.Lookup("dividendRate"),
		PayoutRatio:                 r.Lookup("payoutRatio"),
		ExDividendDate:              r.Lookup("exDividendDate"),
		LastDividendValue:           r.Lookup("lastDividendValue"),
		LastDividendDate:            r.Lookup("lastDividendDate"),
		FiveYearAvgDividendYield:    r.Lookup("fiveYearAvgDividendYield"),
		TrailingAnnualDividendRate:  r.Lookup("trailingAnnualDividendRate"),
		TrailingAnnualDividendYield: r.Lookup("trailingAnnualDividendYield"),
	}
}

// AssembleAnalystTargets builds the get_analyst_targets response.
func AssembleAnalystTargets(symbol string, r record.Record) entity.AnalystTargetsResponse {
	current := currentPrice(r)
	targetMean := r.Lookup("targetMeanPrice")

	resp := entity.AnalystTargetsResponse{
		Symbol:             strings.ToUpper(symbol),
		Recommendation:     r.LookupOr("recommendationKey", notAvailable),
		RecommendationMean: r.Lookup("recommendationMean"),
		NumberOfAnalysts:   r.Lookup("numberOfAnalystOpinions"),
		TargetHigh:         r.Lookup("targetHighPrice"),
		TargetLow:          r.Lookup("targetLowPrice"),
		TargetMean:         targetMean,
		TargetMedian:       r.Lookup("targetMedianPrice"),
		CurrentPrice:       current,
	}
	if targetMean.Truthy() && current.Truthy() {
		resp.UpsidePercent = metrics.UpsidePercent(targetMean.NullFloat(), current.NullFloat())
	}
	return resp
}

// AssembleNews builds the get_stock_news response, or the no-news shape when
// items is empty. maxArticles is expected to be already clamped to [0, MaxArticles].
func AssembleNews(symbol string, items []record.Record, maxArticles int) any {
	if len(items) == 0 {
		return entity.NoNewsResponse{Message: fmt.Sprintf("No recent news found for %s", symbol)}
	}

	n := min(len(items), maxArticles)
	articles := make([]entity.Article, 0, n)
	for _, it := range items[:n] {
		articles = append(articles, entity.Article{
			Title:     it.Lookup("title"),
			Publisher: it.Lookup("publisher"),
			Link:      it.Lookup("link"),
			Published: it.Lookup("providerPublishTime"),
		})
	}

	return entity.NewsResponse{
		Symbol:       strings.ToUpper(symbol),
		ArticleCount: n,
		Articles:     articles,
	}
}

// AssembleCompareMetrics builds one populated compare_stocks entry.
func AssembleCompareMetrics(symbol string, r record.Record) entity.CompareMetrics {
	current := currentPrice(r)
	yearHigh := r.Lookup("fiftyTwoWeekHigh")
	yearLow := r.Lookup("fiftyTwoWeekLow")

	m := entity.CompareMetrics{
		Symbol:           strings.ToUpper(symbol),
		Name:             r.LookupOr("shortName", notAvailable),
		Price:            current,
		MarketCap:        r.Lookup("marketCap"),
		PERatio:          r.Lookup("trailingPE"),
		ForwardPE:        r.Lookup("forwardPE"),
		DividendYield:    r.Lookup("dividendYield"),
		Beta:             r.Lookup("beta"),
		FiftyTwoWeekHigh: yearHigh,
		FiftyTwoWeekLow:  yearLow,
		ProfitMargin:     r.Lookup("profitMargins"),
		RevenueGrowth:    r.Lookup("revenueGrowth"),
	}
	if current.Truthy() && yearLow.Truthy() {
		m.PercentFrom52WLow = metrics.PercentFrom52WeekLow(current.NullFloat(), yearLow.NullFloat())
	}
	return m
}
