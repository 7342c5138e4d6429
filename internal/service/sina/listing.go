// Package sina implements the ranked-listing fallback source. Pages come
// back as GBK pseudo-JSON sorted by change percent; each page is fetched,
// re-encoded and schema-checked before anything downstream sees it.
package sina

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"TrendHunter/internal/domain/models"
	drepo "TrendHunter/internal/domain/repository"
	"TrendHunter/internal/service/quote"
	xlogger "TrendHunter/pkg/logger"
	"TrendHunter/pkg/util"
)

const (
	hostKey = "sina"
	listURL = "https://vip.stock.finance.sina.com.cn/quotes_service/api/json_v2.php/Market_Center.getHQNodeData"
)

type Config struct {
	PageSize  int
	MaxPages  int
	PageDelay time.Duration
}

type Listing struct {
	base      *quote.Base
	metrics   drepo.Metrics
	logger    *xlogger.Logger
	pageSize  int
	maxPages  int
	pageDelay time.Duration
}

func NewListing(base *quote.Base, cfg Config, metrics drepo.Metrics, logger *xlogger.Logger) *Listing {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 80
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 4
	}
	if cfg.PageDelay <= 0 {
		cfg.PageDelay = 300 * time.Millisecond
	}
	return &Listing{
		base:      base,
		metrics:   metrics,
		logger:    logger,
		pageSize:  cfg.PageSize,
		maxPages:  cfg.MaxPages,
		pageDelay: cfg.PageDelay,
	}
}

var _ drepo.MarketListing = (*Listing)(nil)

// ListActive walks the ranked listing page by page, pausing between pages.
// A short or null page ends the walk. Individual page failures are skipped;
// an error is returned only when every page failed.
func (l *Listing) ListActive(ctx context.Context) ([]models.QuoteSnapshot, error) {
	var snaps []models.QuoteSnapshot
	var lastErr error
	okPages := 0

	for page := 1; page <= l.maxPages; page++ {
		if page > 1 {
			select {
			case <-time.After(l.pageDelay):
			case <-ctx.Done():
				return snaps, ctx.Err()
			}
		}

		body, err := l.base.GetBytesWithRetry(ctx, hostKey, listURL, map[string]string{
			"page": strconv.Itoa(page),
			"num":  strconv.Itoa(l.pageSize),
			"sort": "changepercent",
			"asc":  "0",
			"node": "hs_a",
		})
		if err != nil {
			lastErr = err
			l.metrics.RecordError("listing")
			l.logger.Warn("listing page failed",
				xlogger.Int("page", page), xlogger.Error(err))
			continue
		}
		decoded, derr := util.DecodeGBK(body)
		if derr != nil {
			decoded = body
		}
		rows, err := parseListingPage(decoded)
		if err != nil {
			lastErr = err
			l.metrics.RecordError("listing")
			l.logger.Warn("listing page unparseable",
				xlogger.Int("page", page), xlogger.Error(err))
			continue
		}

		okPages++
		l.metrics.RecordFetch(hostKey, "listing")
		for _, r := range rows {
			if snap, ok := r.snapshot(); ok {
				snaps = append(snaps, snap)
			}
		}
		if len(rows) < l.pageSize {
			break
		}
	}

	if okPages == 0 && lastErr != nil {
		return nil, fmt.Errorf("listing unavailable: %w", lastErr)
	}
	return snaps, nil
}
