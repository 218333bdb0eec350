package mock

// Profile is the static shape of a simulated stock.
type Profile struct {
	Name          string
	Price         float64
	ChangePercent float64
	MarketCap     float64
	PERatio       float64
	Sector        string
	Industry      string
}

var profiles = map[string]Profile{
	"AAPL":  {"Apple Inc.", 182.50, 2.85, 2.85e12, 28.5, "Technology", "Consumer Electronics"},
	"MSFT":  {"Microsoft Corp.", 378.90, 1.8, 2.81e12, 35.2, "Technology", "Software"},
	"GOOGL": {"Alphabet Inc.", 141.80, 2.1, 1.78e12, 25.8, "Technology", "Internet"},
	"AMZN":  {"Amazon.com Inc.", 178.25, 3.2, 1.86e12, 62.3, "Consumer Cyclical", "E-Commerce"},
	"TSLA":  {"Tesla Inc.", 248.75, -1.4, 790e9, 72.5, "Consumer Cyclical", "Auto Manufacturers"},
	"META":  {"Meta Platforms", 485.60, 2.8, 1.24e12, 32.1, "Technology", "Social Media"},
	"NVDA":  {"NVIDIA Corp.", 682.35, 4.2, 1.68e12, 65.4, "Technology", "Semiconductors"},
	"JPM":   {"JPMorgan Chase", 195.40, 0.5, 562e9, 11.2, "Financial", "Banks"},
	"V":     {"Visa Inc.", 275.20, 1.1, 565e9, 29.8, "Financial", "Credit Services"},
	"WMT":   {"Walmart Inc.", 165.80, 0.8, 446e9, 28.4, "Consumer Defensive", "Retail"},
	"NFLX":  {"Netflix Inc.", 545.20, 1.5, 236e9, 42.3, "Technology", "Streaming"},
	"DIS":   {"Walt Disney Co.", 112.45, -0.2, 205e9, 68.5, "Consumer Cyclical", "Entertainment"},
	"PYPL":  {"PayPal Holdings", 62.50, -2.1, 68e9, 15.2, "Financial", "Payment Services"},
	"INTC":  {"Intel Corp.", 42.80, 0.9, 180e9, 22.1, "Technology", "Semiconductors"},
	"AMD":   {"AMD Inc.", 145.25, 3.5, 235e9, 45.8, "Technology", "Semiconductors"},
	"CRM":   {"Salesforce Inc.", 265.40, 1.2, 258e9, 38.5, "Technology", "Software"},
	"UBER":  {"Uber Technologies", 72.35, 2.4, 150e9, 85.2, "Technology", "Ride-Sharing"},
	"SHOP":  {"Shopify Inc.", 78.90, -0.8, 100e9, 52.3, "Technology", "E-Commerce"},
	"SQ":    {"Block Inc.", 68.45, 1.8, 42e9, 28.9, "Financial", "Fintech"},
	"COIN":  {"Coinbase Global", 185.60, 5.2, 45e9, 55.2, "Financial", "Cryptocurrency"},
}

// shortNames are used in generated headlines.
var shortNames = map[string]string{
	"AAPL":  "Apple",
	"MSFT":  "Microsoft",
	"GOOGL": "Alphabet",
	"AMZN":  "Amazon",
	"TSLA":  "Tesla",
	"META":  "Meta",
	"NVDA":  "NVIDIA",
	"JPM":   "JPMorgan",
	"V":     "Visa",
}

type indexProfile struct {
	base      float64
	changeMin float64 // lower bound of the daily change percent
	spread    float64
}

var indexProfiles = map[string]indexProfile{
	"^GSPC":  {5021.84, -0.5, 2},
	"^IXIC":  {15990.66, -0.8, 3},
	"^DJI":   {38519.84, -0.3, 1.5},
	"^FTSE":  {7952.62, -0.6, 1.2},
	"^GDAXI": {17049.45, -0.4, 1.8},
	"^N225":  {36286.71, -1.0, 2.5},
}

var defaultIndexProfile = indexProfile{base: 1000, changeMin: -1, spread: 2}
