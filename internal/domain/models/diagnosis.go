package models

// Severity classifies a diagnosis for the rendering layer.
type Severity string

const (
	SeverityHold Severity = "hold"
	SeveritySell Severity = "sell"
)

// Diagnosis is the result of evaluating one held position. Computed fresh per
// request, never stored.
type Diagnosis struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Low10     float64  `json:"low_10"`
	ProfitPct float64  `json:"profit_pct"`
	Advice    string   `json:"advice"`
	Severity  Severity `json:"severity"`
}
