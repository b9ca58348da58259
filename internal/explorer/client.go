// Package explorer wraps the public block-explorer REST APIs used for BTC
// balance lookups: Blockstream, Blockchain.com and Blockcypher. All balances
// are satoshis. Failures collapse to the (-1, -1) sentinel so batch callers
// can record a row and move on.
package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	blockstreamAPI = "https://blockstream.info/api"
	blockchainAPI  = "https://blockchain.info"
	blockcypherAPI = "https://api.blockcypher.com"
)

// Result is one address lookup. A negative BalanceSats means the lookup
// failed on every API it was given.
type Result struct {
	BalanceSats       int64
	TotalReceivedSats int64
}

// Failed is the sentinel for a lookup that produced no usable answer.
var Failed = Result{BalanceSats: -1, TotalReceivedSats: -1}

// Client talks to the explorer APIs. Base URLs are fields so tests can point
// at a local server.
type Client struct {
	hc        *http.Client
	userAgent string

	BlockstreamBase string
	BlockchainBase  string
	BlockcypherBase string
}

// Options tunes a Client. Zero values fall back to 15s timeout and no
// User-Agent header.
type Options struct {
	Timeout   time.Duration
	UserAgent string
}

func New(opt Options) *Client {
	if opt.Timeout <= 0 {
		opt.Timeout = 15 * time.Second
	}
	return &Client{
		hc:              &http.Client{Timeout: opt.Timeout},
		userAgent:       opt.UserAgent,
		BlockstreamBase: blockstreamAPI,
		BlockchainBase:  blockchainAPI,
		BlockcypherBase: blockcypherAPI,
	}
}

// statusError carries the HTTP status for callers that branch on 429.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.url, e.code)
}

// IsRateLimited reports whether err is an HTTP 429 from an explorer API.
func IsRateLimited(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusTooManyRequests
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{code: resp.StatusCode, url: url}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
