package sina

import "testing"

func TestQuoteBareKeys(t *testing.T) {
	in := []byte(`[{symbol:"sh600519",name:"贵州茅台",trade:"1700.000",changepercent:0.592}]`)
	want := `[{"symbol":"sh600519","name":"贵州茅台","trade":"1700.000","changepercent":0.592}]`
	if got := string(quoteBareKeys(in)); got != want {
		t.Fatalf("got %s", got)
	}
}

func TestQuoteBareKeysLeavesStringContentAlone(t *testing.T) {
	in := []byte(`[{name:"a{b,c:d",trade:"1.0"}]`)
	want := `[{"name":"a{b,c:d","trade":"1.0"}]`
	if got := string(quoteBareKeys(in)); got != want {
		t.Fatalf("got %s", got)
	}
}

func TestQuoteBareKeysAlreadyQuoted(t *testing.T) {
	in := []byte(`[{"symbol":"sh600519",trade:"1.0"}]`)
	want := `[{"symbol":"sh600519","trade":"1.0"}]`
	if got := string(quoteBareKeys(in)); got != want {
		t.Fatalf("got %s", got)
	}
}

func TestParseListingPage(t *testing.T) {
	body := []byte(`[
		{symbol:"SH600519",name:"贵州茅台",trade:"1700.000",settlement:"1690.000",changepercent:0.592},
		{symbol:"sz000001",name:"平安银行",trade:"11.200",settlement:"11.000",changepercent:1.818}
	]`)
	rows, err := parseListingPage(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	snap, ok := rows[0].snapshot()
	if !ok {
		t.Fatalf("expected snapshot")
	}
	if snap.Symbol != "sh600519" {
		t.Fatalf("expected lowercased symbol, got %q", snap.Symbol)
	}
	if snap.Last != 1700.0 || snap.ChangePct != 0.592 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestParseListingPageNull(t *testing.T) {
	rows, err := parseListingPage([]byte("null"))
	if err != nil || rows != nil {
		t.Fatalf("expected empty result, got %v %v", rows, err)
	}
}

func TestParseListingPageRejectsGarbage(t *testing.T) {
	if _, err := parseListingPage([]byte("<html>error</html>")); err == nil {
		t.Fatalf("expected error for non-JSON body")
	}
}

func TestSnapshotDropsHalted(t *testing.T) {
	r := listingRow{Symbol: "sh600000", Name: "浦发银行", Trade: 0}
	if _, ok := r.snapshot(); ok {
		t.Fatalf("expected halted row to be dropped")
	}
}

func TestFlexFloatVariants(t *testing.T) {
	cases := map[string]float64{
		`"1.50"`: 1.5,
		`2.25`:   2.25,
		`"-"`:    0,
		`null`:   0,
		`""`:     0,
	}
	for in, want := range cases {
		var f flexFloat
		if err := f.UnmarshalJSON([]byte(in)); err != nil {
			t.Fatalf("%s: unexpected error %v", in, err)
		}
		if float64(f) != want {
			t.Fatalf("%s: got %v want %v", in, f, want)
		}
	}
}
