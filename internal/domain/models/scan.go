package models

// ScanResultRow is one breakout hit. Rows are ranked by ChangePct descending.
type ScanResultRow struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ChangePct   float64 `json:"change_pct"`
	VolumeRatio float64 `json:"volume_ratio,omitempty"`
	High20      float64 `json:"high_20"`
	BreakoutPct float64 `json:"breakout_pct"` // margin of price above the 20-bar high
}

// ScanReport is the full output of one scan invocation: the regime banner,
// the ranked table and the top-ranked pick, as plain data for the rendering
// layer.
type ScanReport struct {
	Regime RegimeState     `json:"regime"`
	Rows   []ScanResultRow `json:"rows"`
	Best   *ScanResultRow  `json:"best,omitempty"`
}

// ScanProgress is emitted once per candidate so an external observer can
// render live status.
type ScanProgress struct {
	Index  int    `json:"index"`
	Total  int    `json:"total"`
	Symbol string `json:"symbol"`
}
