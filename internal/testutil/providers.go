package testutil

import (
	"context"

	"github.com/preston-bernstein/mlb-travel-picks/internal/domain/games"
)

// GoodProvider serves the buckets that fall inside the requested range.
type GoodProvider struct {
	Buckets []games.DateBucket
}

func (p GoodProvider) FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	_ = ctx
	out := []games.DateBucket{}
	for _, b := range p.Buckets {
		if b.Date >= start && b.Date <= end {
			out = append(out, b)
		}
	}
	return out, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	return nil, p.Err
}

// EmptyProvider returns no buckets, no error.
type EmptyProvider struct{}

func (EmptyProvider) FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	return []games.DateBucket{}, nil
}

// NotifyingProvider serves buckets and closes Notify on the first fetch.
type NotifyingProvider struct {
	Buckets []games.DateBucket
	Notify  chan struct{}
}

func (p *NotifyingProvider) FetchSchedule(ctx context.Context, start, end string) ([]games.DateBucket, error) {
	if p.Notify != nil {
		select {
		case <-p.Notify:
		default:
			close(p.Notify)
		}
	}
	return GoodProvider{Buckets: p.Buckets}.FetchSchedule(ctx, start, end)
}
