// Package newsfmt は複数のニュースソースで共通の整形処理を提供します。
package newsfmt

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// Recently は公開時刻が不明な場合の表示です。
	Recently = "Recently"
	// DefaultCategory はどのキーワードにも一致しない場合のカテゴリです。
	DefaultCategory = "Market"
)

var categoryKeywords = []struct {
	category string
	words    []string
}{
	{"Earnings", []string{"earning", "profit", "revenue"}},
	{"Deals", []string{"deal", "acquire", "merger"}},
	{"Technology", []string{"tech", "ai", "software"}},
	{"Banking", []string{"bank", "fed", "rate"}},
	{"Partnership", []string{"partner", "collab"}},
}

// Categorize は見出しのキーワードからカテゴリを決めます。上から順に最初に一致したものを採用します。
func Categorize(title string) string {
	lower := strings.ToLower(title)
	for _, c := range categoryKeywords {
		for _, w := range c.words {
			if strings.Contains(lower, w) {
				return c.category
			}
		}
	}
	return DefaultCategory
}

// RelativeTime は公開時刻をnow基準の相対表記にします。ゼロ値や未来の時刻は"Recently"です。
func RelativeTime(published, now time.Time) string {
	if published.IsZero() {
		return Recently
	}
	diff := now.Sub(published)
	switch {
	case diff < 0:
		return Recently
	case diff < time.Hour:
		return fmt.Sprintf("%d min ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	}
}

// Truncate はsをmaxルーン以内に切り詰めて"..."を付けます。空文字は空のままです。
func Truncate(s string, max int) string {
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s + "..."
	}
	return string([]rune(s)[:max]) + "..."
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// CleanHTML はタグを除去し、HTMLエンティティを戻して前後の空白を詰めます。
func CleanHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(s, "")))
}
