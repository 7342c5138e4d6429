package models

// Candidate is a pool entry produced by the pool builder and consumed by the
// breakout scanner. It lives for one scan invocation only.
type Candidate struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Last        float64 `json:"last"`
	ChangePct   float64 `json:"change_pct"`
	VolumeRatio float64 `json:"volume_ratio,omitempty"`
}

// CandidateFromSnapshot narrows a quote snapshot to a pool candidate.
func CandidateFromSnapshot(s QuoteSnapshot) Candidate {
	return Candidate{
		Symbol:      s.Symbol,
		Name:        s.Name,
		Last:        s.Last,
		ChangePct:   s.ChangePct,
		VolumeRatio: s.VolumeRatio,
	}
}
