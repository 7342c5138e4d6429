package eastmoney

import "testing"

func TestParseKlineRows(t *testing.T) {
	rows := []string{
		"2024-10-09,10.00,10.50,10.80,9.90,123456",
		"2024-10-10,10.50,10.40,10.60,10.30,98765",
	}
	bars := parseKlineRows(rows)
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Open != 10.00 || bars[0].Close != 10.50 || bars[0].High != 10.80 || bars[0].Low != 9.90 {
		t.Fatalf("unexpected first bar %+v", bars[0])
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Fatalf("expected ascending dates")
	}
}

func TestParseKlineRowsSkipsMalformed(t *testing.T) {
	rows := []string{
		"garbage",
		"not-a-date,1,2,3,4,5",
		"2024-10-10,10.50,10.40,10.60,10.30,98765",
	}
	bars := parseKlineRows(rows)
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar, got %d", len(bars))
	}
}

func TestSnapshotFromDiff(t *testing.T) {
	row := map[string]interface{}{
		"f12": "600519",
		"f13": float64(1),
		"f14": "贵州茅台",
		"f2":  float64(1700.5),
		"f18": float64(1690.0),
		"f3":  float64(0.62),
		"f10": float64(1.5),
	}
	snap, ok := snapshotFromDiff(row)
	if !ok {
		t.Fatalf("expected snapshot")
	}
	if snap.Symbol != "sh600519" {
		t.Fatalf("unexpected symbol %q", snap.Symbol)
	}
	if snap.Last != 1700.5 || snap.VolumeRatio != 1.5 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestSnapshotFromDiffDropsHalted(t *testing.T) {
	row := map[string]interface{}{
		"f12": "600000",
		"f13": float64(1),
		"f14": "浦发银行",
		"f2":  "-",
	}
	if _, ok := snapshotFromDiff(row); ok {
		t.Fatalf("expected halted row to be dropped")
	}
}

func TestSnapshotFromDiffShenzhenPrefix(t *testing.T) {
	row := map[string]interface{}{
		"f12": "000001",
		"f13": float64(0),
		"f14": "平安银行",
		"f2":  float64(11.2),
	}
	snap, ok := snapshotFromDiff(row)
	if !ok || snap.Symbol != "sz000001" {
		t.Fatalf("unexpected snapshot %+v ok=%v", snap, ok)
	}
}

func TestSecid(t *testing.T) {
	if got := secid("sh600519"); got != "1.600519" {
		t.Fatalf("unexpected secid %q", got)
	}
	if got := secid("sz000001"); got != "0.000001" {
		t.Fatalf("unexpected secid %q", got)
	}
}
