// Package eastmoney implements the aggregated-endpoints driver: daily bars
// come back as comma-joined rows inside a JSON array, and one bulk snapshot
// endpoint serves both quote batches and the full-market listing.
package eastmoney

import (
	"context"
	"strings"

	"TrendHunter/internal/domain/models"
	drepo "TrendHunter/internal/domain/repository"
	"TrendHunter/internal/service/quote"
	xlogger "TrendHunter/pkg/logger"
)

const (
	hostKey    = "eastmoney"
	klineURL   = "https://push2his.eastmoney.com/api/qt/stock/kline/get"
	ulistURL   = "https://push2.eastmoney.com/api/qt/ulist.np/get"
	clistURL   = "https://push2.eastmoney.com/api/qt/clist/get"
	spotFields = "f2,f3,f10,f12,f13,f14,f18"
	// all A-share boards
	clistScope = "m:0+t:6,m:0+t:80,m:1+t:2,m:1+t:23"
)

type Client struct {
	base    *quote.Base
	metrics drepo.Metrics
	logger  *xlogger.Logger
}

func New(base *quote.Base, metrics drepo.Metrics, logger *xlogger.Logger) *Client {
	return &Client{base: base, metrics: metrics, logger: logger}
}

var (
	_ drepo.MarketDataSource = (*Client)(nil)
	_ drepo.MarketListing    = (*Client)(nil)
)

type klineResponse struct {
	Data *struct {
		Code   string   `json:"code"`
		Klines []string `json:"klines"`
	} `json:"data"`
}

// FetchHistory returns daily bars ascending by date. The adjusted series
// (fqt=1) is requested first; when the source has none, the unadjusted
// series is substituted transparently. Soft-fails to an empty slice.
func (c *Client) FetchHistory(ctx context.Context, symbol string, lookbackDays int) []models.Bar {
	sym, err := drepo.NormalizeSymbol(symbol)
	if err != nil {
		return nil
	}
	for _, fqt := range []string{"1", "0"} {
		rows, err := c.fetchKlines(ctx, sym, lookbackDays, fqt)
		if err != nil {
			c.metrics.RecordError("history")
			c.logger.Warn("history fetch failed",
				xlogger.String("symbol", sym), xlogger.Error(err))
			return nil
		}
		if len(rows) > 0 {
			c.metrics.RecordFetch(hostKey, "history")
			return parseKlineRows(rows)
		}
	}
	return nil
}

func (c *Client) fetchKlines(ctx context.Context, sym string, lookbackDays int, fqt string) ([]string, error) {
	var kr klineResponse
	err := c.base.GetJSONWithRetry(ctx, hostKey, klineURL, map[string]string{
		"secid":   secid(sym),
		"klt":     "101", // daily
		"fqt":     fqt,
		"fields1": "f1,f2,f3",
		"fields2": "f51,f52,f53,f54,f55,f56",
		"beg":     "0",
		"end":     "20500101",
		"lmt":     itoa(lookbackDays),
	}, &kr)
	if err != nil {
		return nil, err
	}
	if kr.Data == nil {
		return nil, nil
	}
	return kr.Data.Klines, nil
}

type spotResponse struct {
	Data *struct {
		Diff []map[string]interface{} `json:"diff"`
	} `json:"data"`
}

// FetchQuotes resolves a batch of symbols in one request. Symbols the
// response omits, and halted rows with dash-valued prices, are dropped.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) map[string]models.QuoteSnapshot {
	secids := make([]string, 0, len(symbols))
	for _, s := range symbols {
		sym, err := drepo.NormalizeSymbol(s)
		if err != nil {
			continue
		}
		secids = append(secids, secid(sym))
	}
	if len(secids) == 0 {
		return nil
	}

	var sr spotResponse
	err := c.base.GetJSONWithRetry(ctx, hostKey, ulistURL, map[string]string{
		"secids": strings.Join(secids, ","),
		"fields": spotFields,
	}, &sr)
	if err != nil || sr.Data == nil {
		c.metrics.RecordError("quotes")
		if err != nil {
			c.logger.Warn("quote batch failed", xlogger.Error(err))
		}
		return nil
	}
	c.metrics.RecordFetch(hostKey, "quotes")

	out := make(map[string]models.QuoteSnapshot, len(sr.Data.Diff))
	for _, row := range sr.Data.Diff {
		snap, ok := snapshotFromDiff(row)
		if !ok {
			continue
		}
		out[snap.Symbol] = snap
	}
	return out
}

// ListActive fetches one bulk full-market snapshot; filtering and truncation
// happen in the pool builder.
func (c *Client) ListActive(ctx context.Context) ([]models.QuoteSnapshot, error) {
	var sr spotResponse
	err := c.base.GetJSONWithRetry(ctx, hostKey, clistURL, map[string]string{
		"pn":     "1",
		"pz":     "6000",
		"po":     "1",
		"fid":    "f3",
		"fs":     clistScope,
		"fields": spotFields,
	}, &sr)
	if err != nil {
		c.metrics.RecordError("listing")
		return nil, err
	}
	if sr.Data == nil {
		return nil, nil
	}
	c.metrics.RecordFetch(hostKey, "listing")

	snaps := make([]models.QuoteSnapshot, 0, len(sr.Data.Diff))
	for _, row := range sr.Data.Diff {
		if snap, ok := snapshotFromDiff(row); ok {
			snaps = append(snaps, snap)
		}
	}
	return snaps, nil
}

// secid maps "sh600519" to "1.600519" and "sz000001" to "0.000001".
func secid(sym string) string {
	code := drepo.BareCode(sym)
	if strings.HasPrefix(sym, "sh") {
		return "1." + code
	}
	return "0." + code
}
