// Package quote holds the shared resilient-fetch foundation every upstream
// driver builds on: per-host pacing, bounded retries with randomized delay,
// and soft-failure semantics.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"TrendHunter/internal/service/ratelimit"
	xhttp "TrendHunter/pkg/http"
)

// Base centralizes HTTP access for quote drivers. A driver embeds a *Base
// and gets pacing plus retry-with-jitter for free.
type Base struct {
	client     *xhttp.Client
	limiter    *ratelimit.Limiter
	retries    int
	delayMin   time.Duration
	delayMax   time.Duration
	ratePerSec float64
	burst      float64
}

type BaseConfig struct {
	Timeout       time.Duration
	DisableProxy  bool
	Retries       int
	RetryDelayMin time.Duration
	RetryDelayMax time.Duration
	RatePerSec    float64
	Burst         float64
}

func NewBase(cfg BaseConfig, limiter *ratelimit.Limiter) *Base {
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	if cfg.RetryDelayMin <= 0 {
		cfg.RetryDelayMin = 500 * time.Millisecond
	}
	if cfg.RetryDelayMax < cfg.RetryDelayMin {
		cfg.RetryDelayMax = cfg.RetryDelayMin
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RatePerSec
	}
	return &Base{
		client: xhttp.NewClient(
			xhttp.WithTimeout(cfg.Timeout),
			xhttp.WithoutProxy(cfg.DisableProxy),
		),
		limiter:    limiter,
		retries:    cfg.Retries,
		delayMin:   cfg.RetryDelayMin,
		delayMax:   cfg.RetryDelayMax,
		ratePerSec: cfg.RatePerSec,
		burst:      cfg.Burst,
	}
}

// GetBytesWithRetry fetches url with bounded retries. hostKey scopes the
// rate-limit bucket so drivers against different hosts do not starve each
// other.
func (b *Base) GetBytesWithRetry(ctx context.Context, hostKey, url string, params map[string]string) ([]byte, error) {
	var err error
	for i := 1; i <= b.retries; i++ {
		if werr := b.limiter.Wait(ctx, hostKey, b.burst, b.ratePerSec); werr != nil {
			return nil, werr
		}
		var body []byte
		body, err = b.client.GetBytes(ctx, url, params)
		if err == nil {
			return body, nil
		}
		select {
		case <-time.After(b.jitter()):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("get %s: %w", url, err)
}

// GetJSONWithRetry fetches and decodes JSON with bounded retries.
func (b *Base) GetJSONWithRetry(ctx context.Context, hostKey, url string, params map[string]string, dest interface{}) error {
	body, err := b.GetBytesWithRetry(ctx, hostKey, url, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func (b *Base) jitter() time.Duration {
	span := b.delayMax - b.delayMin
	if span <= 0 {
		return b.delayMin
	}
	return b.delayMin + time.Duration(rand.Int63n(int64(span)))
}
