package api

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

// ErrUnreachable wraps connectivity failures. DisplayError maps it to the
// user-facing connection message.
var ErrUnreachable = errors.New("api: backend unreachable")

// Client talks to the backend over fasthttp. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *fasthttp.Client
	timeout time.Duration
}

// NewClient builds a client for the given base URL, e.g.
// "http://localhost:8000".
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &fasthttp.Client{},
		timeout: timeout,
	}
}

func (c *Client) do(method, path string, body interface{}, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return fmt.Errorf("api: %s %s returned status %d", method, path, code)
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
	}
	return nil
}

// GetPrices fetches historical price series for a set of tickers.
func (c *Client) GetPrices(tickers []string, period string) (*PriceData, error) {
	if period == "" {
		period = "1y"
	}
	path := fmt.Sprintf("/prices?tickers=%s&period=%s",
		url.QueryEscape(strings.Join(tickers, ",")), url.QueryEscape(period))
	var out PriceData
	if err := c.do(fasthttp.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Simulate runs an investment simulation on the backend.
func (c *Client) Simulate(req SimulationRequest) (*SimulationResponse, error) {
	var out SimulationResponse
	if err := c.do(fasthttp.MethodPost, "/simulate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CoachAdvice requests personalized AI coach advice.
func (c *Client) CoachAdvice(req CoachRequest) (*CoachResponse, error) {
	var out CoachResponse
	if err := c.do(fasthttp.MethodPost, "/coach", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HistoricalPerformance looks up how a ticker actually performed around an
// event year.
func (c *Client) HistoricalPerformance(ticker string, eventYear int) (*HistoricalPerformance, error) {
	path := fmt.Sprintf("/historical?ticker=%s&year=%d", url.QueryEscape(ticker), eventYear)
	var out HistoricalPerformance
	if err := c.do(fasthttp.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LeaderboardTop fetches the top players for a season.
func (c *Client) LeaderboardTop(season string, limit int) ([]LeaderboardEntry, error) {
	if season == "" {
		season = "current"
	}
	if limit <= 0 {
		limit = 10
	}
	path := fmt.Sprintf("/leaderboard/top?season=%s&limit=%d", url.QueryEscape(season), limit)
	var out []LeaderboardEntry
	if err := c.do(fasthttp.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LeaderboardSubmit posts a player's score.
func (c *Client) LeaderboardSubmit(req LeaderboardSubmit) error {
	return c.do(fasthttp.MethodPost, "/leaderboard/submit", req, nil)
}

// DisplayError converts an API error into the string shown to the player.
// Connectivity failures get the canonical "unable to reach server" text;
// everything else surfaces its message.
func DisplayError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrUnreachable) {
		return "Unable to connect to the server. Please check if the backend is running."
	}
	return err.Error()
}
