// Package fx implements the external exchange-rate provider client.
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	portssvc "github.com/finanzap/finanzap_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

const defaultTimeout = 5 * time.Second

// Client queries a rate provider over HTTP for currency sell rates.
// GET {baseURL}?currency=USD responds {"sellRate": "1000.50"}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a provider client. A non-positive timeout falls back to
// the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ portssvc.RateQuoteProvider = (*Client)(nil)

type quoteResponse struct {
	SellRate decimal.Decimal `json:"sellRate"`
}

// QuoteSellRate fetches the current sell rate for one unit of currencyCode.
func (c *Client) QuoteSellRate(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, url.Values{"currency": {currencyCode}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate provider returned status %d for %s", resp.StatusCode, currencyCode)
	}

	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rate response: %w", err)
	}

	if !quote.SellRate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate provider returned non-positive rate %s for %s", quote.SellRate, currencyCode)
	}

	return quote.SellRate, nil
}
