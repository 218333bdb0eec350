package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseSpan は正規の値と別名を受け付け、未知の値を拒否することを検証します。
func TestParseSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   Span
		wantOK bool
	}{
		{in: "", want: DefaultSpan, wantOK: true},
		{in: "1mo", want: Span1M, wantOK: true},
		{in: "1m", want: Span1M, wantOK: true},
		{in: " 6M ", want: Span6M, wantOK: true},
		{in: "1Y", want: Span1Y, wantOK: true},
		{in: "5y", want: Span5Y, wantOK: true},
		{in: "10y", wantOK: false},
		{in: "max", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseSpan(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestSpan_Days は未知の期間で既定の日数を返すことを検証します。
func TestSpan_Days(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 30, Span1M.Days())
	assert.Equal(t, 365, Span1Y.Days())
	assert.Equal(t, 1825, Span("bogus").Days())
}
