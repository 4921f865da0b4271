package api

// tickerMap routes investment option names to real market tickers for the
// historical-performance lookup. Unknown names fall back to the S&P 500.
var tickerMap = map[string]string{
	"Japanese Stocks":   "^N225",
	"Tokyo Real Estate": "^N225", // Nikkei as proxy
	"US Treasury Bonds": "^TNX",
	"US Stocks":         "^GSPC",
	"US Tech Stocks":    "^IXIC",
	"Gold":              "GLD",
	"US Dollar Cash":    "UUP",
	"Asian Stocks":      "^HSI", // Hang Seng as regional proxy
	"Bitcoin":           "BTC-USD",
	"Ethereum":          "ETH-USD",
}

// TickerForOption maps an option name to its lookup ticker.
func TickerForOption(name string) string {
	if t, ok := tickerMap[name]; ok {
		return t
	}
	return "^GSPC"
}
