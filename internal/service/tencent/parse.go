package tencent

import (
	"encoding/json"
	"fmt"
	"strings"

	"TrendHunter/internal/domain/models"
	"TrendHunter/pkg/util"
)

// quote blob field positions, tilde-separated
const (
	fieldName      = 1
	fieldLast      = 3
	fieldPrevClose = 4
	fieldChangePct = 32
	fieldVolRatio  = 49
)

// parseQuoteBlob parses records of the form
//
//	v_sh600519="1~name~600519~1700.00~...";
//
// one per symbol, semicolon-separated. Records with too few fields or a
// non-positive price (halted) are dropped.
func parseQuoteBlob(text string) map[string]models.QuoteSnapshot {
	out := make(map[string]models.QuoteSnapshot)
	for _, record := range strings.Split(text, ";") {
		record = strings.TrimSpace(record)
		if !strings.HasPrefix(record, "v_") {
			continue
		}
		eq := strings.Index(record, "=")
		if eq < 0 {
			continue
		}
		symbol := record[2:eq]
		value := strings.Trim(record[eq+1:], "\"")
		fields := strings.Split(value, "~")
		if len(fields) <= fieldChangePct {
			continue
		}
		last := util.ParseFloatDefault(fields[fieldLast], 0)
		if last <= 0 {
			continue
		}
		snap := models.QuoteSnapshot{
			Symbol:    symbol,
			Name:      fields[fieldName],
			Last:      last,
			PrevClose: util.ParseFloatDefault(fields[fieldPrevClose], 0),
			ChangePct: util.ParseFloatDefault(fields[fieldChangePct], 0),
		}
		if len(fields) > fieldVolRatio {
			snap.VolumeRatio = util.ParseFloatDefault(fields[fieldVolRatio], 0)
		}
		out[symbol] = snap
	}
	return out
}

// parseKlineEntry decodes one symbol's kline payload. The adjusted series
// lives under "qfqday"; plain "day" is substituted when the source has no
// adjusted data. Row layout is [date, open, close, high, low, volume], with
// occasional trailing metadata objects that are skipped.
func parseKlineEntry(entry json.RawMessage) []models.Bar {
	var series map[string]json.RawMessage
	if err := json.Unmarshal(entry, &series); err != nil {
		return nil
	}
	raw, ok := series["qfqday"]
	if !ok {
		raw = series["day"]
	}
	if len(raw) == 0 {
		return nil
	}

	var rows [][]interface{}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}
	bars := make([]models.Bar, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		date, ok := util.ParseBarDate(toStr(row[0]))
		if !ok {
			continue
		}
		bars = append(bars, models.Bar{
			Date:   date,
			Open:   util.ParseFloatDefault(toStr(row[1]), 0),
			Close:  util.ParseFloatDefault(toStr(row[2]), 0),
			High:   util.ParseFloatDefault(toStr(row[3]), 0),
			Low:    util.ParseFloatDefault(toStr(row[4]), 0),
			Volume: util.ParseFloatDefault(toStr(row[5]), 0),
		})
	}
	return bars
}

func toStr(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}
