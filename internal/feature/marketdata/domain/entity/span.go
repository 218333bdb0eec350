package entity

import "strings"

// Span is a lookback window for historical series.
type Span string

const (
	Span1M Span = "1mo"
	Span3M Span = "3mo"
	Span6M Span = "6mo"
	Span1Y Span = "1y"
	Span5Y Span = "5y"

	// DefaultSpan is used when no span is requested.
	DefaultSpan = Span5Y
)

var spanDays = map[Span]int{
	Span1M: 30,
	Span3M: 90,
	Span6M: 180,
	Span1Y: 365,
	Span5Y: 1825,
}

// ParseSpan accepts the canonical values and a few aliases ("1m", "6m", "5Y").
// An empty string yields DefaultSpan.
func ParseSpan(s string) (Span, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return DefaultSpan, true
	case "1m":
		return Span1M, true
	case "3m":
		return Span3M, true
	case "6m":
		return Span6M, true
	}
	sp := Span(s)
	if _, ok := spanDays[sp]; !ok {
		return "", false
	}
	return sp, true
}

// Days returns the number of calendar days covered by the span.
func (s Span) Days() int {
	if d, ok := spanDays[s]; ok {
		return d
	}
	return spanDays[DefaultSpan]
}
