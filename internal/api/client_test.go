package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

// TestCoachAdviceRoundTrip tests request encoding and response decoding
func TestCoachAdviceRoundTrip(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/coach" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req CoachRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.PlayerLevel != "beginner" {
			t.Errorf("Expected player_level beginner, got %q", req.PlayerLevel)
		}
		json.NewEncoder(w).Encode(CoachResponse{
			Advice:        "diversify",
			Encouragement: "keep going",
		})
	})

	resp, err := client.CoachAdvice(CoachRequest{PlayerLevel: "beginner"})
	if err != nil {
		t.Fatalf("CoachAdvice failed: %v", err)
	}
	if resp.Advice != "diversify" || resp.Encouragement != "keep going" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

// TestGetPricesQuery tests ticker joining and the default period
func TestGetPricesQuery(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/prices" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("tickers") != "^GSPC,GLD" {
			t.Errorf("Unexpected tickers param: %q", r.URL.Query().Get("tickers"))
		}
		if r.URL.Query().Get("period") != "1y" {
			t.Errorf("Expected default period 1y, got %q", r.URL.Query().Get("period"))
		}
		json.NewEncoder(w).Encode(PriceData{
			Data:   map[string][]PricePoint{"GLD": {{Date: "2008-09-15", Close: 77.1}}},
			Cached: true,
		})
	})

	prices, err := client.GetPrices([]string{"^GSPC", "GLD"}, "")
	if err != nil {
		t.Fatalf("GetPrices failed: %v", err)
	}
	if !prices.Cached || len(prices.Data["GLD"]) != 1 {
		t.Errorf("Unexpected price data: %+v", prices)
	}
}

// TestSimulateRoundTrip tests request encoding and response decoding
func TestSimulateRoundTrip(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/simulate" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req SimulationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.InitialCapital != 100000 || req.AssetWeights["^GSPC"] != 0.6 {
			t.Errorf("Unexpected request body: %+v", req)
		}
		json.NewEncoder(w).Encode(SimulationResponse{
			FinalValue:  125000,
			TotalReturn: 25,
			SharpeRatio: 1.1,
		})
	})

	resp, err := client.Simulate(SimulationRequest{
		InitialCapital: 100000,
		AssetWeights:   map[string]float64{"^GSPC": 0.6, "^TNX": 0.4},
		TradingType:    "closed",
		TimeHorizon:    1,
	})
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if resp.FinalValue != 125000 || resp.TotalReturn != 25 {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

// TestHistoricalPerformanceQuery tests the lookup path and parameters
func TestHistoricalPerformanceQuery(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/historical" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("ticker") != "^TNX" || r.URL.Query().Get("year") != "2008" {
			t.Errorf("Unexpected query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(HistoricalPerformance{FinalValue: 125000})
	})

	perf, err := client.HistoricalPerformance("^TNX", 2008)
	if err != nil {
		t.Fatalf("HistoricalPerformance failed: %v", err)
	}
	if perf.FinalValue != 125000 {
		t.Errorf("Expected final value 125000, got %v", perf.FinalValue)
	}
}

// TestLeaderboardTopDefaults tests that season and limit get defaults
func TestLeaderboardTopDefaults(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("season") != "current" || r.URL.Query().Get("limit") != "10" {
			t.Errorf("Expected default season/limit, got %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]LeaderboardEntry{{PlayerName: "Guardian"}})
	})

	entries, err := client.LeaderboardTop("", 0)
	if err != nil {
		t.Fatalf("LeaderboardTop failed: %v", err)
	}
	if len(entries) != 1 || entries[0].PlayerName != "Guardian" {
		t.Errorf("Unexpected entries: %+v", entries)
	}
}

// TestConnectivityErrorMapping tests the unreachable-backend taxonomy
func TestConnectivityErrorMapping(t *testing.T) {
	// Nothing listens on this port.
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := client.CoachAdvice(CoachRequest{})
	if err == nil {
		t.Fatal("Expected an error against a dead backend")
	}
	if got := DisplayError(err); got != "Unable to connect to the server. Please check if the backend is running." {
		t.Errorf("Unexpected display message: %q", got)
	}
}

// TestNonSuccessStatus tests that non-2xx responses surface the status
func TestNonSuccessStatus(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	_, err := client.CoachAdvice(CoachRequest{})
	if err == nil {
		t.Fatal("Expected an error for a 502 response")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("Error should mention the status code, got %q", err)
	}
	if msg := DisplayError(err); msg == "" || strings.Contains(msg, "Unable to connect") {
		t.Errorf("Non-connectivity errors should surface their message, got %q", msg)
	}
}

// TestTickerForOption tests the option-name routing with fallback
func TestTickerForOption(t *testing.T) {
	if got := TickerForOption("US Treasury Bonds"); got != "^TNX" {
		t.Errorf("Expected ^TNX, got %s", got)
	}
	if got := TickerForOption("Asian Stocks"); got != "^HSI" {
		t.Errorf("Expected ^HSI for the 1997 regional option, got %s", got)
	}
	if got := TickerForOption("Something Unmapped"); got != "^GSPC" {
		t.Errorf("Expected ^GSPC fallback, got %s", got)
	}
}
