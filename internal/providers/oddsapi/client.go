// Package oddsapi reads MLB moneylines and pitcher props from the-odds-api.com.
package oddsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/odds"
	"github.com/preston-bernstein/mlb-travel-picks/internal/providers"
)

const (
	providerName       = "oddsapi"
	defaultBaseURL     = "https://api.the-odds-api.com/v4"
	defaultHTTPTimeout = 10 * time.Second
	sportKey           = "baseball_mlb"
	marketH2H          = "h2h"
)

// Config controls how the odds client reaches the upstream API.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client fetches h2h quotes and keeps the best price per side across bookmakers.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an odds client.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{apiKey: cfg.APIKey, baseURL: strings.TrimSuffix(base, "/"), httpClient: client}
}

type eventResponse struct {
	ID           string              `json:"id"`
	CommenceTime string              `json:"commence_time"`
	HomeTeam     string              `json:"home_team"`
	AwayTeam     string              `json:"away_team"`
	Bookmakers   []bookmakerResponse `json:"bookmakers"`
}

type bookmakerResponse struct {
	Key     string           `json:"key"`
	Markets []marketResponse `json:"markets"`
}

type marketResponse struct {
	Key      string            `json:"key"`
	Outcomes []outcomeResponse `json:"outcomes"`
}

type outcomeResponse struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int     `json:"price"`
	Point       float64 `json:"point"`
}

// FetchOdds returns one quote per upstream event. Without an API key it
// returns ErrProviderUnavailable.
func (c *Client) FetchOdds(ctx context.Context) ([]odds.Quote, error) {
	if c == nil || c.apiKey == "" {
		return nil, providers.ErrProviderUnavailable
	}

	var events []eventResponse
	if err := c.get(ctx, "/sports/"+sportKey+"/odds", marketH2H, &events); err != nil {
		return nil, err
	}

	quotes := make([]odds.Quote, 0, len(events))
	for _, e := range events {
		quotes = append(quotes, bestQuote(e))
	}
	return quotes, nil
}

// FetchPitcherProps returns the outs-recorded lines of each event. The
// upstream only serves player props one event at a time, so a quota error
// stops the walk and returns what was read so far; other failures are
// collected and the walk continues.
func (c *Client) FetchPitcherProps(ctx context.Context, eventIDs []string) ([]odds.PitcherProp, error) {
	if c == nil || c.apiKey == "" {
		return nil, providers.ErrProviderUnavailable
	}

	var (
		props []odds.PitcherProp
		errs  []error
	)
	for _, id := range eventIDs {
		var event eventResponse
		err := c.get(ctx, "/sports/"+sportKey+"/events/"+url.PathEscape(id)+"/odds", odds.MarketPitcherOuts, &event)
		if err != nil {
			if _, limited := providers.AsRateLimitError(err); limited || ctx.Err() != nil {
				return props, errors.Join(append(errs, err)...)
			}
			errs = append(errs, fmt.Errorf("event %s: %w", id, err))
			continue
		}
		if event.ID == "" {
			event.ID = id
		}
		props = append(props, bestProps(event, odds.MarketPitcherOuts)...)
	}
	return props, errors.Join(errs...)
}

func (c *Client) get(ctx context.Context, path, markets string, out any) error {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("regions", "us")
	q.Set("markets", markets)
	q.Set("oddsFormat", "american")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := time.Duration(0)
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			retryAfter = time.Duration(secs) * time.Second
		}
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfter,
			Remaining:  resp.Header.Get("x-requests-remaining"),
			Message:    "oddsapi: quota exhausted",
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("oddsapi: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("oddsapi: decode: %w", err)
	}
	return nil
}

// bestQuote keeps the shortest price offered for each side.
func bestQuote(e eventResponse) odds.Quote {
	q := odds.Quote{
		EventID:      e.ID,
		HomeTeam:     e.HomeTeam,
		AwayTeam:     e.AwayTeam,
		CommenceTime: e.CommenceTime,
	}
	for _, b := range e.Bookmakers {
		for _, m := range b.Markets {
			if m.Key != "" && m.Key != marketH2H {
				continue
			}
			for _, o := range m.Outcomes {
				switch o.Name {
				case e.HomeTeam:
					if odds.Better(o.Price, q.HomePrice) {
						q.HomePrice = o.Price
					}
				case e.AwayTeam:
					if odds.Better(o.Price, q.AwayPrice) {
						q.AwayPrice = o.Price
					}
				}
			}
		}
	}
	return q
}

// bestProps keeps one line per pitcher. The first bookmaker to quote a
// pitcher fixes the point; later books only improve prices at that point.
func bestProps(e eventResponse, market string) []odds.PitcherProp {
	var order []string
	byPitcher := make(map[string]*odds.PitcherProp)
	for _, b := range e.Bookmakers {
		for _, m := range b.Markets {
			if m.Key != market {
				continue
			}
			for _, o := range m.Outcomes {
				name := strings.TrimSpace(o.Description)
				if name == "" {
					continue
				}
				p, ok := byPitcher[name]
				if !ok {
					p = &odds.PitcherProp{EventID: e.ID, Market: market, Pitcher: name, Point: o.Point, Bookmaker: b.Key}
					byPitcher[name] = p
					order = append(order, name)
				}
				if o.Point != p.Point {
					continue
				}
				switch strings.ToLower(o.Name) {
				case "over":
					if odds.Better(o.Price, p.OverPrice) {
						p.OverPrice = o.Price
					}
				case "under":
					if odds.Better(o.Price, p.UnderPrice) {
						p.UnderPrice = o.Price
					}
				}
			}
		}
	}
	out := make([]odds.PitcherProp, 0, len(order))
	for _, name := range order {
		out = append(out, *byPitcher[name])
	}
	return out
}
