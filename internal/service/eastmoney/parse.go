package eastmoney

import (
	"strconv"
	"strings"

	"TrendHunter/internal/domain/models"
	"TrendHunter/pkg/util"
)

// parseKlineRows converts comma-joined kline rows into bars. Row layout is
// date,open,close,high,low,volume; malformed rows are skipped.
func parseKlineRows(rows []string) []models.Bar {
	bars := make([]models.Bar, 0, len(rows))
	for _, row := range rows {
		parts := strings.Split(row, ",")
		if len(parts) < 6 {
			continue
		}
		date, ok := util.ParseBarDate(parts[0])
		if !ok {
			continue
		}
		bars = append(bars, models.Bar{
			Date:   date,
			Open:   util.ParseFloatDefault(parts[1], 0),
			Close:  util.ParseFloatDefault(parts[2], 0),
			High:   util.ParseFloatDefault(parts[3], 0),
			Low:    util.ParseFloatDefault(parts[4], 0),
			Volume: util.ParseFloatDefault(parts[5], 0),
		})
	}
	return bars
}

// snapshotFromDiff builds a snapshot from one spot row. Halted instruments
// carry "-" in numeric fields and are dropped.
func snapshotFromDiff(row map[string]interface{}) (models.QuoteSnapshot, bool) {
	code := strField(row, "f12")
	name := strField(row, "f14")
	last := numField(row, "f2")
	if code == "" || last <= 0 {
		return models.QuoteSnapshot{}, false
	}

	prefix := "sz"
	if numField(row, "f13") == 1 {
		prefix = "sh"
	}

	return models.QuoteSnapshot{
		Symbol:      prefix + code,
		Name:        name,
		Last:        last,
		PrevClose:   numField(row, "f18"),
		ChangePct:   numField(row, "f3"),
		VolumeRatio: numField(row, "f10"),
	}, true
}

func numField(row map[string]interface{}, key string) float64 {
	switch v := row[key].(type) {
	case float64:
		return v
	case string:
		return util.ParseFloatDefault(v, 0)
	default:
		return 0
	}
}

func strField(row map[string]interface{}, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

func itoa(n int) string { return strconv.Itoa(n) }
