package newsfmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestCategorize はキーワードの優先順位どおりにカテゴリが決まることを検証します。
func TestCategorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Apple quarterly EARNINGS beat", "Earnings"},
		{"Revenue up, merger talks continue", "Earnings"},
		{"Microsoft to acquire game studio", "Deals"},
		{"New software release", "Technology"},
		{"Fed holds steady", "Banking"},
		{"Two automakers partner on batteries", "Partnership"},
		{"Stocks close higher", "Market"},
		{"", "Market"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Categorize(tt.title))
		})
	}
}

// TestRelativeTime は経過時間に応じた相対表記を検証します。
func TestRelativeTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		published time.Time
		want      string
	}{
		{"zero", time.Time{}, Recently},
		{"future", now.Add(time.Minute), Recently},
		{"minutes", now.Add(-42 * time.Minute), "42 min ago"},
		{"hours", now.Add(-5*time.Hour - 10*time.Minute), "5 hours ago"},
		{"days", now.Add(-73 * time.Hour), "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RelativeTime(tt.published, now))
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Truncate("", 5))
	assert.Equal(t, "abc...", Truncate("abc", 5))
	assert.Equal(t, "abcde...", Truncate("abcdefgh", 5))
	assert.Equal(t, "日本語...", Truncate("日本語テキスト", 3))
}

func TestCleanHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Stocks & bonds <rally>", CleanHTML("  <p>Stocks &amp; bonds &lt;rally&gt;</p> "))
}
