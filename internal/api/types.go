// Package api is the client for the Legacy Guardians backend, a black-box
// REST collaborator providing price history, simulation, AI coach advice,
// and the leaderboard. All persistence lives behind it; this process keeps
// nothing durable.
package api

// PriceData is the response of GET /prices.
type PriceData struct {
	Data      map[string][]PricePoint `json:"data"`
	Cached    bool                    `json:"cached"`
	Timestamp string                  `json:"timestamp"`
}

// PricePoint is one bar in a ticker's series.
type PricePoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// SimulationRequest is the body of POST /simulate.
type SimulationRequest struct {
	InitialCapital     float64            `json:"initial_capital"`
	AssetWeights       map[string]float64 `json:"asset_weights"`
	TradingType        string             `json:"trading_type"`    // "open" | "closed"
	InvestmentGoal     string             `json:"investment_goal"` // "cash_flow" | "capital_gains" | "balanced"
	TimeHorizon        int                `json:"time_horizon"`
	RebalanceFrequency int                `json:"rebalance_frequency,omitempty"`
	StartDate          string             `json:"start_date,omitempty"`
	EndDate            string             `json:"end_date,omitempty"`
}

// PerformanceChart is the plottable series attached to simulation results.
type PerformanceChart struct {
	Dates   []string  `json:"dates"`
	Values  []float64 `json:"values"`
	Returns []float64 `json:"returns"`
}

// SimulationResponse is the result of POST /simulate.
type SimulationResponse struct {
	FinalValue       float64          `json:"final_value"`
	TotalReturn      float64          `json:"total_return"`
	AnnualizedReturn float64          `json:"annualized_return"`
	Volatility       float64          `json:"volatility"`
	SharpeRatio      float64          `json:"sharpe_ratio"`
	MaxDrawdown      float64          `json:"max_drawdown"`
	PerformanceChart PerformanceChart `json:"performance_chart"`
}

// CoachRequest is the body of POST /coach.
type CoachRequest struct {
	PlayerLevel       string             `json:"player_level"` // beginner | intermediate | advanced
	CurrentPortfolio  map[string]float64 `json:"current_portfolio"`
	InvestmentGoal    string             `json:"investment_goal"`
	RiskTolerance     float64            `json:"risk_tolerance"`
	TimeHorizon       int                `json:"time_horizon"`
	CompletedMissions []string           `json:"completed_missions"`
	CurrentMission    string             `json:"current_mission,omitempty"`
	PlayerContext     string             `json:"player_context,omitempty"`
}

// CoachResponse is the structured advice returned by POST /coach.
type CoachResponse struct {
	Advice              string   `json:"advice"`
	Recommendations     []string `json:"recommendations"`
	NextSteps           []string `json:"next_steps"`
	RiskAssessment      string   `json:"risk_assessment"`
	EducationalInsights []string `json:"educational_insights"`
	Encouragement       string   `json:"encouragement"`
}

// HistoricalPerformance is the lookup keyed by (ticker, eventYear) that
// backs the dialogue's metric and chart panels.
type HistoricalPerformance struct {
	FinalValue  float64      `json:"final_value"`
	TotalReturn float64      `json:"total_return"`
	Volatility  float64      `json:"volatility"`
	SharpeRatio float64      `json:"sharpe_ratio"`
	MaxDrawdown float64      `json:"max_drawdown"`
	ChartData   []ChartPoint `json:"chart_data"`
}

// ChartPoint is one sample of portfolio value over time.
type ChartPoint struct {
	Date           string  `json:"date"`
	PortfolioValue float64 `json:"portfolio_value"`
}

// LeaderboardSubmit is the body of POST /leaderboard/submit.
type LeaderboardSubmit struct {
	PlayerID             string             `json:"player_id"`
	PlayerName           string             `json:"player_name"`
	Season               string             `json:"season"`
	TotalScore           int                `json:"total_score"`
	RiskAdjustedReturn   float64            `json:"risk_adjusted_return"`
	CompletedMissions    int                `json:"completed_missions"`
	ExplorationBreadth   int                `json:"exploration_breadth"`
	PortfolioPerformance map[string]float64 `json:"portfolio_performance"`
}

// LeaderboardEntry is one row of GET /leaderboard/top.
type LeaderboardEntry struct {
	Rank               int     `json:"rank"`
	PlayerName         string  `json:"player_name"`
	TotalScore         int     `json:"total_score"`
	RiskAdjustedReturn float64 `json:"risk_adjusted_return"`
	CompletedMissions  int     `json:"completed_missions"`
	ExplorationBreadth int     `json:"exploration_breadth"`
	Timestamp          string  `json:"timestamp"`
}
