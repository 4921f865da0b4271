// Package trading implements the competition mini-game: a tick-based random
// price walk over a small asset universe driving a buy/sell ledger and a
// running portfolio valuation.
package trading

// StartingCapital is the cash every competition session begins with.
const StartingCapital = 5000.0

// MaxTicks caps the price walk; the session self-terminates at the ceiling.
const MaxTicks = 24

// Asset identifies a tradable instrument.
type Asset string

const (
	AssetApple     Asset = "apple"
	AssetMicrosoft Asset = "microsoft"
	AssetNvidia    Asset = "nvidia"
	AssetTesla     Asset = "tesla"
	AssetSP500     Asset = "sp500"
	AssetGlobalETF Asset = "etf"
	AssetBitcoin   Asset = "bitcoin"
	AssetEthereum  Asset = "ethereum"
)

var assetNames = map[Asset]string{
	AssetApple:     "Apple",
	AssetMicrosoft: "Microsoft",
	AssetNvidia:    "NVIDIA",
	AssetTesla:     "Tesla",
	AssetSP500:     "S&P 500 ETF",
	AssetGlobalETF: "Global ETF",
	AssetBitcoin:   "Bitcoin",
	AssetEthereum:  "Ethereum",
}

var startingPrices = map[Asset]float64{
	AssetApple:     230.45,
	AssetMicrosoft: 506.46,
	AssetNvidia:    178.10,
	AssetTesla:     346.76,
	AssetSP500:     646.33,
	AssetGlobalETF: 134.18,
	AssetBitcoin:   43250.0,
	AssetEthereum:  2680.5,
}

// Assets lists the tradable universe in a stable order.
func Assets() []Asset {
	return []Asset{
		AssetApple, AssetMicrosoft, AssetNvidia, AssetTesla,
		AssetSP500, AssetGlobalETF, AssetBitcoin, AssetEthereum,
	}
}

// Name returns the display name for an asset.
func Name(a Asset) string { return assetNames[a] }

// StartingPrice returns the seed price for an asset, 0 for unknown assets.
func StartingPrice(a Asset) float64 { return startingPrices[a] }
