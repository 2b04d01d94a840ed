package tool

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"market_mcp/internal/feature/marketdata/usecase"
)

// Tool names as advertised to clients.
const (
	NameCurrentQuote     = "get_current_quote"
	NamePriceHistory     = "get_price_history"
	NameCompanyProfile   = "get_company_profile"
	NameKeyStatistics    = "get_key_statistics"
	NameValuationMetrics = "get_valuation_metrics"
	NameFinancialHealth  = "get_financial_health"
	NameDividendInfo     = "get_dividend_info"
	NameAnalystTargets   = "get_analyst_targets"
	NameStockNews        = "get_stock_news"
	NameCompareStocks    = "compare_stocks"
)

const (
	periodDesc   = "How far back to retrieve data. Options: 1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max."
	intervalDesc = "Time between data points. Options: 1m, 5m, 15m, 30m, 1h, 1d, 1wk, 1mo. Intraday intervals (1m-1h) only available for recent periods."
	maxNewsDesc  = "Maximum number of articles to return (default 10, max 25)."
	symbolsDesc  = `List of 2-10 ticker symbols to compare (e.g., ["AAPL", "MSFT", "GOOGL"]). Symbols beyond the tenth are ignored.`
)

// describe lays out a tool's help text as summary, usage, Args and Returns.
// args alternate parameter name and description.
func describe(summary, usage, returns string, args ...string) string {
	var b strings.Builder
	b.WriteString(summary)
	b.WriteString("\n\n")
	b.WriteString(usage)
	b.WriteString("\n\nArgs:\n")
	for i := 0; i+1 < len(args); i += 2 {
		b.WriteString("    " + args[i] + ": " + args[i+1] + "\n")
	}
	b.WriteString("\nReturns:\n    ")
	b.WriteString(returns)
	return b.String()
}

func symbolText(example string) string {
	return "Stock ticker symbol (e.g., " + example + ")."
}

func symbolParam(example string) mcp.ToolOption {
	return mcp.WithString("symbol",
		mcp.Required(),
		mcp.Description(symbolText(example)),
	)
}

func currentQuoteTool() mcp.Tool {
	const ex = "AAPL, GOOGL, MSFT, TSLA"
	return mcp.NewTool(NameCurrentQuote,
		mcp.WithDescription(describe(
			"Get the latest real-time quote for a stock including price, change, and volume.",
			"Use this to check the current trading price and today's performance of any stock.",
			"JSON with current price, price change (absolute and percent), volume, bid/ask prices, and today's trading range.",
			"symbol", symbolText(ex),
		)),
		symbolParam(ex),
	)
}

func priceHistoryTool() mcp.Tool {
	const ex = "AAPL, GOOGL"
	return mcp.NewTool(NamePriceHistory,
		mcp.WithDescription(describe(
			"Get historical OHLCV (Open, High, Low, Close, Volume) price data for charting or analysis.",
			"Use this for technical analysis, plotting price charts, or analyzing price trends over time.",
			"JSON with array of OHLCV candles, each containing date, open, high, low, close, and volume.",
			"symbol", symbolText(ex),
			"period", periodDesc,
			"interval", intervalDesc,
		)),
		symbolParam(ex),
		mcp.WithString("period",
			mcp.Description(periodDesc),
			mcp.DefaultString(usecase.DefaultPeriod),
		),
		mcp.WithString("interval",
			mcp.Description(intervalDesc),
			mcp.DefaultString(usecase.DefaultInterval),
		),
	)
}

// symbolOnlyTool builds a tool whose only parameter is symbol.
func symbolOnlyTool(name, example, summary, usage, returns string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(describe(summary, usage, returns, "symbol", symbolText(example))),
		symbolParam(example),
	)
}

func companyProfileTool() mcp.Tool {
	return symbolOnlyTool(NameCompanyProfile, "AAPL, GOOGL",
		"Get company business description, sector, industry, and corporate details.",
		"Use this to learn what a company does, its industry classification, and basic corporate info.",
		"JSON with company name, sector, industry, business description, country, website, employee count, and CEO name.",
	)
}

func keyStatisticsTool() mcp.Tool {
	return symbolOnlyTool(NameKeyStatistics, "AAPL, GOOGL",
		"Get market statistics including market cap, 52-week range, beta, and shares outstanding.",
		"Use this for market sizing, volatility assessment, and understanding stock's market position.",
		"JSON with market cap, enterprise value, 52-week high/low, beta, shares outstanding, float, and short interest data.",
	)
}

func valuationMetricsTool() mcp.Tool {
	return symbolOnlyTool(NameValuationMetrics, "AAPL, GOOGL",
		"Get valuation ratios like P/E, P/B, PEG, and EV/EBITDA for fundamental analysis.",
		"Use this to assess if a stock is overvalued or undervalued relative to earnings and assets.",
		"JSON with trailing P/E, forward P/E, PEG ratio, price-to-book, price-to-sales, and EV/EBITDA ratios.",
	)
}

func financialHealthTool() mcp.Tool {
	return symbolOnlyTool(NameFinancialHealth, "AAPL, GOOGL",
		"Get profitability, margins, returns, and balance sheet health indicators.",
		"Use this to assess a company's financial strength, profitability, and operational efficiency.",
		"JSON with profit margins, ROE, ROA, debt-to-equity, current ratio, revenue, EBITDA, and cash flow metrics.",
	)
}

func dividendInfoTool() mcp.Tool {
	return symbolOnlyTool(NameDividendInfo, "AAPL, KO, JNJ",
		"Get dividend yield, payout ratio, and dividend history details.",
		"Use this to evaluate a stock's income potential and dividend sustainability.",
		"JSON with dividend yield, annual dividend rate, payout ratio, ex-dividend date, and 5-year average yield.",
	)
}

func analystTargetsTool() mcp.Tool {
	return symbolOnlyTool(NameAnalystTargets, "AAPL, GOOGL",
		"Get Wall Street analyst price targets and buy/sell/hold recommendations.",
		"Use this to see what professional analysts think about a stock's future price.",
		"JSON with consensus recommendation, number of analysts, price target (high, low, mean, median), and calculated upside potential.",
	)
}

func stockNewsTool() mcp.Tool {
	const ex = "AAPL, GOOGL"
	return mcp.NewTool(NameStockNews,
		mcp.WithDescription(describe(
			"Get recent news headlines and articles about a specific stock.",
			"Use this to stay informed about company developments, earnings, and market-moving events.",
			"JSON array of news articles with title, publisher, link, and publish timestamp.",
			"symbol", symbolText(ex),
			"max_articles", maxNewsDesc,
		)),
		symbolParam(ex),
		mcp.WithNumber("max_articles",
			mcp.Description(maxNewsDesc),
			mcp.DefaultNumber(usecase.DefaultMaxArticles),
		),
	)
}

func compareStocksTool() mcp.Tool {
	return mcp.NewTool(NameCompareStocks,
		mcp.WithDescription(describe(
			"Compare key metrics across multiple stocks side-by-side.",
			"Use this to compare valuations, performance, and fundamentals of competing stocks or portfolio candidates.",
			"JSON array with each stock's price, market cap, P/E, dividend yield, and distance from the 52-week low for easy comparison.",
			"symbols", symbolsDesc,
		)),
		mcp.WithArray("symbols",
			mcp.Required(),
			mcp.Description(symbolsDesc),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}
