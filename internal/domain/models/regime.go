package models

// RegimeState is the "safe to trade long" gate computed from the benchmark
// index. A data-unavailable outcome is Safe=false with zero values, never a
// guessed "safe".
type RegimeState struct {
	Safe  bool    `json:"safe"`
	Index float64 `json:"index"`
	MA60  float64 `json:"ma60"`
	AsOf  string  `json:"as_of"` // date of the last benchmark bar, YYYY-MM-DD
}
