package models

// QuoteSnapshot is one real-time read for a symbol. Staleness is defined by
// the upstream source (seconds to minutes).
type QuoteSnapshot struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Last        float64 `json:"last"`
	PrevClose   float64 `json:"prev_close"`
	ChangePct   float64 `json:"change_pct"`
	VolumeRatio float64 `json:"volume_ratio,omitempty"` // 0 when the source has none
}
