package models

import "time"

// Bar is a single daily OHLC session. Sequences are ordered ascending by
// date, one bar per trading session, and are immutable once fetched.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}
