// Package tencent implements the quote/kline-endpoints driver. Quotes arrive
// as a tilde-delimited text blob, klines as a JSON object keyed by symbol
// whose adjusted series ("qfqday") may be absent.
package tencent

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"TrendHunter/internal/domain/models"
	drepo "TrendHunter/internal/domain/repository"
	"TrendHunter/internal/service/quote"
	xlogger "TrendHunter/pkg/logger"
	"TrendHunter/pkg/util"
)

const (
	hostKey  = "tencent"
	quoteURL = "https://qt.gtimg.cn/"
	klineURL = "https://web.ifzq.gtimg.cn/appstock/app/fqkline/get"
)

type Client struct {
	base    *quote.Base
	metrics drepo.Metrics
	logger  *xlogger.Logger
}

func New(base *quote.Base, metrics drepo.Metrics, logger *xlogger.Logger) *Client {
	return &Client{base: base, metrics: metrics, logger: logger}
}

var _ drepo.MarketDataSource = (*Client)(nil)

type klineResponse struct {
	Code int                        `json:"code"`
	Data map[string]json.RawMessage `json:"data"`
}

// FetchHistory returns daily bars ascending by date. The response nests the
// series under the symbol key; "qfqday" (adjusted) is preferred, "day"
// substituted when absent. Soft-fails to an empty slice.
func (c *Client) FetchHistory(ctx context.Context, symbol string, lookbackDays int) []models.Bar {
	sym, err := drepo.NormalizeSymbol(symbol)
	if err != nil {
		return nil
	}

	var kr klineResponse
	err = c.base.GetJSONWithRetry(ctx, hostKey, klineURL, map[string]string{
		"param": strings.Join([]string{sym, "day", "", "", itoa(lookbackDays), "qfq"}, ","),
	}, &kr)
	if err != nil {
		c.metrics.RecordError("history")
		c.logger.Warn("history fetch failed",
			xlogger.String("symbol", sym), xlogger.Error(err))
		return nil
	}
	entry, ok := kr.Data[sym]
	if !ok {
		return nil
	}
	c.metrics.RecordFetch(hostKey, "history")
	return parseKlineEntry(entry)
}

// FetchQuotes resolves a batch of symbols in one request. The host serves a
// GBK text blob, one record per symbol; unresolvable symbols are dropped.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) map[string]models.QuoteSnapshot {
	qualified := make([]string, 0, len(symbols))
	for _, s := range symbols {
		sym, err := drepo.NormalizeSymbol(s)
		if err != nil {
			continue
		}
		qualified = append(qualified, sym)
	}
	if len(qualified) == 0 {
		return nil
	}

	body, err := c.base.GetBytesWithRetry(ctx, hostKey, quoteURL, map[string]string{
		"q": strings.Join(qualified, ","),
	})
	if err != nil {
		c.metrics.RecordError("quotes")
		c.logger.Warn("quote batch failed", xlogger.Error(err))
		return nil
	}
	decoded, err := util.DecodeGBK(body)
	if err != nil {
		decoded = body
	}
	c.metrics.RecordFetch(hostKey, "quotes")
	return parseQuoteBlob(string(decoded))
}

func itoa(n int) string { return strconv.Itoa(n) }
