package ratelimiter

import (
	"time"

	"golang.org/x/time/rate"
)

// Limiter は外部APIへのリクエスト予算を表すインターフェースです。
// Allowは待機せず、予算がなければfalseを返します。
type Limiter interface {
	Allow() bool
}

// RateLimiter は interval あたり limit 回までの呼び出しを許可するトークンバケットです。
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter は新しいRateLimiterを生成します。limitが0以下の場合は無制限です。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit)}
}

// Allow は予算が残っていればトークンを1つ消費してtrueを返します。
func (rl *RateLimiter) Allow() bool {
	return rl.limiter.Allow()
}
