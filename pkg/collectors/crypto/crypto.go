// Package crypto provides the cryptocurrency ticker provider. Every coin is
// fetched independently and a failure for one coin never cancels the others.
package crypto

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultTickerURL is the CoinPaprika ticker endpoint; the coin id is
// appended as the final path segment.
const DefaultTickerURL = "https://api.coinpaprika.com/v1/tickers"

// DefaultIDs is the watch list used when none is configured.
var DefaultIDs = []string{"xrp-xrp", "btc-bitcoin", "eth-ethereum", "sol-solana", "usdc-usd-coin"}

// ErrNoTicker is returned when the response decodes but carries no coin.
var ErrNoTicker = errors.New("empty ticker")

// Quote is the price data in one currency.
type Quote struct {
	Price            float64 `json:"price"`
	PercentChange1h  float64 `json:"percent_change_1h"`
	PercentChange24h float64 `json:"percent_change_24h"`
	PercentChange7d  float64 `json:"percent_change_7d"`
}

// Ticker is one coin's reading. It is replaced wholesale on every refresh.
type Ticker struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Quotes struct {
		USD Quote `json:"USD"`
	} `json:"quotes"`
}

// USD returns the dollar quote.
func (t *Ticker) USD() Quote { return t.Quotes.USD }

// Result is the settled outcome for one id: exactly one of Ticker and Err
// is set.
type Result struct {
	ID     string  `json:"id"`
	Ticker *Ticker `json:"ticker,omitempty"`
	Err    error   `json:"-"`
}

// OK reports whether the fetch for this id succeeded.
func (r Result) OK() bool { return r.Err == nil && r.Ticker != nil }

type httpGetter interface {
	GetJSON(ctx context.Context, url string, header http.Header, out interface{}) error
}

// Provider fetches tickers.
type Provider struct {
	client  httpGetter
	baseURL string
}

// NewProvider returns a provider for the ticker endpoint at baseURL.
func NewProvider(client httpGetter, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = DefaultTickerURL
	}
	return &Provider{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Fetch retrieves a single coin.
func (p *Provider) Fetch(ctx context.Context, id string) (*Ticker, error) {
	var t Ticker
	if err := p.client.GetJSON(ctx, p.baseURL+"/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	if t.Symbol == "" && t.Name == "" {
		return nil, fmt.Errorf("%s: %w", id, ErrNoTicker)
	}
	return &t, nil
}

// FetchAll fetches every id concurrently and waits for all of them to
// settle. The result slice has one entry per id, in the order of ids.
func (p *Provider) FetchAll(ctx context.Context, ids []string) []Result {
	results := make([]Result, len(ids))

	// The group carries no context: one failure must not cancel siblings.
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			t, err := p.Fetch(ctx, id)
			results[i] = Result{ID: id, Ticker: t, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Succeeded returns the fulfilled results, preserving order.
func Succeeded(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// AllFailedError is returned by the collector when no id could be fetched.
type AllFailedError struct {
	// First is the failure of the first id in input order. It is nil when
	// the watch list was empty.
	First error
}

func (e *AllFailedError) Error() string {
	if e.First == nil {
		return "all crypto fetches failed"
	}
	return "all crypto fetches failed: " + e.First.Error()
}

func (e *AllFailedError) Unwrap() error { return e.First }
