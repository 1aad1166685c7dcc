package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"nifty-data/internal/model"
)

const (
	chartBaseURL = "https://query1.finance.yahoo.com"

	maxRetries = 3
	retryDelay = 15 * time.Second

	userAgent = "Mozilla/5.0 (X11; Linux x86_64)"
)

// Client fetches 1-minute OHLCV bars from the Yahoo chart API.
type Client struct {
	client     *http.Client
	baseURL    string
	retryDelay time.Duration
}

// GetName returns provider name.
func (c *Client) GetName() string {
	return "Yahoo"
}

// Close closes connections.
func (c *Client) Close() error {
	if c.client != nil {
		c.client.CloseIdleConnections()
	}
	return nil
}

// buildChartRequest builds a GET request for 1-minute bars in [from, to)
// with dividend and split events included.
func (c *Client) buildChartRequest(ctx context.Context, symbol string, from, to time.Time) (*http.Request, error) {
	rawURL := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(symbol))
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	q := u.Query()
	q.Set("period1", strconv.FormatInt(from.Unix(), 10))
	q.Set("period2", strconv.FormatInt(to.Unix(), 10))
	q.Set("interval", "1m")
	q.Set("events", "div,splits")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

// doChartRequest runs one GET request with retries on transport errors and
// 429 responses. Other non-OK statuses fail immediately.
func (c *Client) doChartRequest(req *http.Request) (*chartResponse, error) {
	for attempt := 1; attempt <= maxRetries; attempt++ {
		resp, err := c.client.Do(req)
		if err != nil {
			if attempt < maxRetries {
				time.Sleep(c.retryDelay)
				continue
			}
			return nil, fmt.Errorf("API call failed after %d attempts: %w", maxRetries, err)
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests {
				if attempt < maxRetries {
					time.Sleep(c.retryDelay)
					continue
				}
				return nil, fmt.Errorf("API rate limit (429) after %d attempts: %s", maxRetries, string(body))
			}
			return nil, fmt.Errorf("API status %d: %s", resp.StatusCode, string(body))
		}

		var result chartResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			resp.Body.Close()
			if attempt < maxRetries {
				time.Sleep(c.retryDelay)
				continue
			}
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		resp.Body.Close()

		if result.Chart.Error != nil {
			return nil, fmt.Errorf("API error %s: %s", result.Chart.Error.Code, result.Chart.Error.Description)
		}
		return &result, nil
	}
	return nil, fmt.Errorf("no response")
}

// History fetches 1-minute bars for symbol in [from, to). An instrument
// with no trades in the window yields an empty slice, not an error.
func (c *Client) History(ctx context.Context, symbol string, from, to time.Time) ([]model.RawBar, error) {
	req, err := c.buildChartRequest(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}
	resp, err := c.doChartRequest(req)
	if err != nil {
		return nil, err
	}
	if len(resp.Chart.Result) == 0 {
		return nil, nil
	}
	return resp.Chart.Result[0].toRawBars(), nil
}
