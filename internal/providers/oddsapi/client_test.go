package oddsapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/preston-bernstein/mlb-travel-picks/internal/providers"
)

const eventsBody = `[
	{
		"id": "evt1",
		"commence_time": "2025-06-10T23:05:00Z",
		"home_team": "New York Yankees",
		"away_team": "Boston Red Sox",
		"bookmakers": [
			{"key": "book-a", "markets": [{"key": "h2h", "outcomes": [
				{"name": "New York Yankees", "price": -150},
				{"name": "Boston Red Sox", "price": 130}
			]}]},
			{"key": "book-b", "markets": [{"key": "h2h", "outcomes": [
				{"name": "New York Yankees", "price": -135},
				{"name": "Boston Red Sox", "price": 120}
			]}]},
			{"key": "book-c", "markets": [{"key": "spreads", "outcomes": [
				{"name": "New York Yankees", "price": 101}
			]}]}
		]
	}
]`

func TestFetchOddsKeepsShortestPricePerSide(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v4/sports/baseball_mlb/odds" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("apiKey") != "key" || q.Get("markets") != "h2h" || q.Get("oddsFormat") != "american" {
			t.Fatalf("unexpected query %s", req.URL.RawQuery)
		}
		return response(http.StatusOK, eventsBody), nil
	})
	client := NewClient(Config{APIKey: "key", BaseURL: "http://example.com/v4/", HTTPClient: &http.Client{Transport: rt}})

	quotes, err := client.FetchOdds(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("expected one quote, got %d", len(quotes))
	}
	q := quotes[0]
	if q.HomePrice != -135 || q.AwayPrice != 120 {
		t.Fatalf("expected best prices -135/+120, got %d/%d", q.HomePrice, q.AwayPrice)
	}
	if q.EventID != "evt1" || q.CommenceTime != "2025-06-10T23:05:00Z" {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestFetchOddsWithoutKeyIsUnavailable(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.FetchOdds(context.Background()); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestFetchOddsQuotaExhausted(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		resp := response(http.StatusTooManyRequests, "")
		resp.Header.Set("x-requests-remaining", "0")
		return resp, nil
	})
	client := NewClient(Config{APIKey: "key", HTTPClient: &http.Client{Transport: rt}})

	_, err := client.FetchOdds(context.Background())
	rl, ok := providers.AsRateLimitError(err)
	if !ok || rl.Remaining != "0" {
		t.Fatalf("expected rate limit error with remaining quota, got %v", err)
	}
}

func TestFetchOddsNon200(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return response(http.StatusUnauthorized, `{"message":"invalid key"}`), nil
	})
	client := NewClient(Config{APIKey: "key", HTTPClient: &http.Client{Transport: rt}})

	if _, err := client.FetchOdds(context.Background()); err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status error, got %v", err)
	}
}

const propsBody = `{
	"id": "evt1",
	"home_team": "Colorado Rockies",
	"away_team": "Los Angeles Dodgers",
	"bookmakers": [
		{"key": "book-a", "markets": [{"key": "pitcher_outs", "outcomes": [
			{"name": "Over", "description": "Kyle Freeland", "price": -120, "point": 15.5},
			{"name": "Under", "description": "Kyle Freeland", "price": -105, "point": 15.5},
			{"name": "Over", "description": "Tyler Glasnow", "price": 100, "point": 17.5}
		]}]},
		{"key": "book-b", "markets": [{"key": "pitcher_outs", "outcomes": [
			{"name": "Over", "description": "Kyle Freeland", "price": -110, "point": 15.5},
			{"name": "Under", "description": "Kyle Freeland", "price": -150, "point": 16.5}
		]}]}
	]
}`

func TestFetchPitcherPropsMergesBookmakers(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/v4/sports/baseball_mlb/events/evt1/odds" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		if req.URL.Query().Get("markets") != "pitcher_outs" {
			t.Fatalf("unexpected query %s", req.URL.RawQuery)
		}
		return response(http.StatusOK, propsBody), nil
	})
	client := NewClient(Config{APIKey: "key", BaseURL: "http://example.com/v4", HTTPClient: &http.Client{Transport: rt}})

	props, err := client.FetchPitcherProps(context.Background(), []string{"evt1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("expected one prop per pitcher, got %+v", props)
	}
	freeland := props[0]
	if freeland.Pitcher != "Kyle Freeland" || freeland.Point != 15.5 || freeland.OverPrice != -110 || freeland.UnderPrice != -105 {
		t.Fatalf("expected best prices at the first quoted point, got %+v", freeland)
	}
	if freeland.EventID != "evt1" || freeland.Bookmaker != "book-a" {
		t.Fatalf("unexpected prop source %+v", freeland)
	}
	if props[1].Pitcher != "Tyler Glasnow" || props[1].UnderPrice != 0 {
		t.Fatalf("unexpected second prop %+v", props[1])
	}
}

func TestFetchPitcherPropsStopsOnQuota(t *testing.T) {
	calls := 0
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		switch calls {
		case 1:
			return response(http.StatusOK, propsBody), nil
		case 2:
			return response(http.StatusNotFound, "gone"), nil
		default:
			return response(http.StatusTooManyRequests, ""), nil
		}
	})
	client := NewClient(Config{APIKey: "key", HTTPClient: &http.Client{Transport: rt}})

	props, err := client.FetchPitcherProps(context.Background(), []string{"evt1", "evt2", "evt3", "evt4"})
	if calls != 3 {
		t.Fatalf("expected the walk to stop at the quota error, got %d calls", calls)
	}
	if len(props) != 2 {
		t.Fatalf("expected props read before the failure, got %+v", props)
	}
	if _, ok := providers.AsRateLimitError(err); !ok || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected joined quota and status errors, got %v", err)
	}
}

func TestFetchPitcherPropsWithoutKeyIsUnavailable(t *testing.T) {
	if _, err := NewClient(Config{}).FetchPitcherProps(context.Background(), []string{"evt1"}); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
