package game

import (
	"fmt"
)

// RiskLevel grades an investment option.
type RiskLevel string

const (
	RiskNone    RiskLevel = "none"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskExtreme RiskLevel = "extreme"
)

// InvestmentOption is one fixed allocation choice within a mission.
// ActualReturn is the historically "true" outcome in percentage points;
// ExpectedReturn is the display range shown before the decision.
type InvestmentOption struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Risk           RiskLevel `json:"risk"`
	ExpectedReturn string    `json:"expected_return"`
	ActualReturn   float64   `json:"actual_return"`
}

// Mission bundles the decision content for one timeline event: the briefing
// shown before the choice, the fixed option set, and the historical outcome
// text revealed afterwards.
type Mission struct {
	Year     int
	Briefing string
	Options  []InvestmentOption
	Outcome  string
}

// MissionRegistry holds the mission definitions keyed by event year.
var MissionRegistry = map[int]Mission{
	1990: {
		Year:     1990,
		Briefing: "It is early 1990. Tokyo land under the Imperial Palace is said to be worth more than California. The Nikkei has tripled in four years. Where do you put your money?",
		Options: []InvestmentOption{
			{ID: "jp-stocks", Name: "Japanese Stocks", Description: "Ride the Nikkei — it has only gone up for a decade", Risk: RiskExtreme, ExpectedReturn: "+20% to +40%", ActualReturn: -40},
			{ID: "jp-realestate", Name: "Tokyo Real Estate", Description: "Land prices in Tokyo have never fallen in living memory", Risk: RiskExtreme, ExpectedReturn: "+15% to +30%", ActualReturn: -45},
			{ID: "us-bonds", Name: "US Treasury Bonds", Description: "Boring government paper paying a steady coupon", Risk: RiskLow, ExpectedReturn: "+6% to +9%", ActualReturn: 8},
			{ID: "gold", Name: "Gold", Description: "The classic store of value when things go wrong", Risk: RiskLow, ExpectedReturn: "-5% to +10%", ActualReturn: -3},
		},
		Outcome: "The Nikkei peaked at 38,915 in December 1989 and lost nearly half its value within a year. Tokyo land prices fell for over a decade. Investors who held boring bonds kept their capital intact.",
	},
	1997: {
		Year:     1997,
		Briefing: "Summer 1997. The Thai baht has just broken its dollar peg and the contagion is spreading through Asia. Currencies and stock markets across the region are in free fall.",
		Options: []InvestmentOption{
			{ID: "asia-stocks", Name: "Asian Stocks", Description: "Buy the regional dip — Asia always bounces back", Risk: RiskHigh, ExpectedReturn: "-20% to +30%", ActualReturn: -12},
			{ID: "usd-cash", Name: "US Dollar Cash", Description: "Flee to the world's reserve currency", Risk: RiskNone, ExpectedReturn: "+4% to +6%", ActualReturn: 9},
			{ID: "us-bonds", Name: "US Treasury Bonds", Description: "Safe haven demand is pushing Treasury prices up", Risk: RiskLow, ExpectedReturn: "+8% to +12%", ActualReturn: 11},
			{ID: "gold", Name: "Gold", Description: "Hard money while paper currencies collapse", Risk: RiskLow, ExpectedReturn: "-5% to +15%", ActualReturn: -21},
		},
		Outcome: "Asian currencies lost up to 80% against the dollar and regional markets more than halved. Dollar cash and Treasuries were the trade of the year, while gold surprisingly fell as central banks sold reserves.",
	},
	2000: {
		Year:     2000,
		Briefing: "March 2000. The Nasdaq just crossed 5,000. Companies with no revenue are worth billions because they have a .com in their name. Your friends are all quitting their jobs to day-trade.",
		Options: []InvestmentOption{
			{ID: "tech-stocks", Name: "US Tech Stocks", Description: "The internet changes everything — valuations don't matter", Risk: RiskExtreme, ExpectedReturn: "+30% to +80%", ActualReturn: -65},
			{ID: "us-bonds", Name: "US Treasury Bonds", Description: "Lock in yields while the Fed is still tightening", Risk: RiskLow, ExpectedReturn: "+10% to +15%", ActualReturn: 17},
			{ID: "usd-cash", Name: "US Dollar Cash", Description: "Sit out the mania in a money market fund", Risk: RiskNone, ExpectedReturn: "+5% to +6%", ActualReturn: 6},
			{ID: "gold", Name: "Gold", Description: "Nobody wants gold in the new economy — contrarian bet", Risk: RiskMedium, ExpectedReturn: "-10% to +10%", ActualReturn: -5},
		},
		Outcome: "The Nasdaq fell 78% from its peak over the next two and a half years. Treasuries rallied hard as the Fed slashed rates. Cash quietly beat almost everything.",
	},
	2008: {
		Year:     2008,
		Briefing: "September 2008. Lehman Brothers has just filed for bankruptcy. Credit markets are frozen, money market funds are breaking the buck, and nobody knows which bank falls next.",
		Options: []InvestmentOption{
			{ID: "us-stocks", Name: "US Stocks", Description: "Be greedy when others are fearful — buy the panic", Risk: RiskExtreme, ExpectedReturn: "-40% to +30%", ActualReturn: -37},
			{ID: "us-bonds", Name: "US Treasury Bonds", Description: "The only asset everyone still trusts", Risk: RiskLow, ExpectedReturn: "+10% to +25%", ActualReturn: 25},
			{ID: "gold", Name: "Gold", Description: "Insurance against a full system collapse", Risk: RiskMedium, ExpectedReturn: "0% to +20%", ActualReturn: 5},
			{ID: "usd-cash", Name: "US Dollar Cash", Description: "Stay liquid and wait for the dust to settle", Risk: RiskNone, ExpectedReturn: "+2% to +4%", ActualReturn: 6},
		},
		Outcome: "The S&P 500 lost 37% in 2008. Long Treasuries returned over 25% as investors fled to safety — one of the best flight-to-quality trades ever recorded. Gold held up; cash preserved capital.",
	},
	2020: {
		Year:     2020,
		Briefing: "March 2020. COVID-19 has shut the world economy. The S&P 500 just fell 34% in 23 trading days — the fastest bear market in history. Central banks are promising unlimited support.",
		Options: []InvestmentOption{
			{ID: "us-stocks", Name: "US Stocks", Description: "Buy the crash — stimulus is coming", Risk: RiskHigh, ExpectedReturn: "-30% to +40%", ActualReturn: 16},
			{ID: "bitcoin", Name: "Bitcoin", Description: "Digital gold for a money-printing era", Risk: RiskExtreme, ExpectedReturn: "-50% to +200%", ActualReturn: 90},
			{ID: "gold", Name: "Gold", Description: "Real assets while central banks print", Risk: RiskMedium, ExpectedReturn: "+5% to +30%", ActualReturn: 25},
			{ID: "us-bonds", Name: "US Treasury Bonds", Description: "Safety first while the virus spreads", Risk: RiskLow, ExpectedReturn: "+5% to +10%", ActualReturn: 8},
		},
		Outcome: "Markets rebounded on historic stimulus: the S&P 500 finished 2020 up 16% despite the crash, gold hit an all-time high, and Bitcoin began a run that took it up nearly fourfold. Panic sellers missed the whole recovery.",
	},
	2025: {
		Year:     2025,
		Briefing: "2025. Inflation is sticky, AI is rewriting entire industries, and geopolitics keeps markets on edge. There is no history book for this one — apply everything you have learned.",
		Options: []InvestmentOption{
			{ID: "ai-stocks", Name: "US Tech Stocks", Description: "Concentrate in the AI leaders reshaping the economy", Risk: RiskHigh, ExpectedReturn: "-20% to +50%", ActualReturn: 22},
			{ID: "bitcoin", Name: "Bitcoin", Description: "Scarce digital asset in an inflationary world", Risk: RiskExtreme, ExpectedReturn: "-60% to +150%", ActualReturn: 45},
			{ID: "ethereum", Name: "Ethereum", Description: "Bet on the smart-contract platform, not just the coin", Risk: RiskExtreme, ExpectedReturn: "-60% to +120%", ActualReturn: 30},
			{ID: "gold", Name: "Gold", Description: "The old hedge for a new kind of uncertainty", Risk: RiskMedium, ExpectedReturn: "0% to +25%", ActualReturn: 12},
		},
		Outcome: "Diversification across growth assets and hedges beat any single concentrated bet. The lesson of thirty-five years of crises: nobody rings a bell at the top, so position for more than one future.",
	},
}

// GetMission retrieves the mission for an event year.
func GetMission(year int) (*Mission, error) {
	mission, ok := MissionRegistry[year]
	if !ok {
		return nil, fmt.Errorf("game: mission not found for year %d", year)
	}
	return &mission, nil
}

// OptionByID finds an option within a mission, or nil.
func (m *Mission) OptionByID(id string) *InvestmentOption {
	for i := range m.Options {
		if m.Options[i].ID == id {
			return &m.Options[i]
		}
	}
	return nil
}
