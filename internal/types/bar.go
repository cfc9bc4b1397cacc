package types

import "time"

// Bar is one closed OHLCV sample within a timeframe's sequence.
type Bar struct {
	// Time is the close time of the bar.
	Time time.Time
	// Symbol is the trading symbol the bar belongs to.
	Symbol string
	// Open is the opening price.
	Open float64
	// High is the highest price.
	High float64
	// Low is the lowest price.
	Low float64
	// Close is the closing price.
	Close float64
	// Volume is the traded volume.
	Volume float64
}

// PriceField names one of the OHLC fields of a bar.
type PriceField string

const (
	PriceFieldOpen  PriceField = "open"
	PriceFieldHigh  PriceField = "high"
	PriceFieldLow   PriceField = "low"
	PriceFieldClose PriceField = "close"
)

// IsValid reports whether the field is one of the known OHLC names.
func (f PriceField) IsValid() bool {
	switch f {
	case PriceFieldOpen, PriceFieldHigh, PriceFieldLow, PriceFieldClose:
		return true
	default:
		return false
	}
}

// Value returns the named field of the bar. Unknown fields fall back to close.
func (b Bar) Value(field PriceField) float64 {
	switch field {
	case PriceFieldOpen:
		return b.Open
	case PriceFieldHigh:
		return b.High
	case PriceFieldLow:
		return b.Low
	case PriceFieldClose:
		return b.Close
	default:
		return b.Close
	}
}
