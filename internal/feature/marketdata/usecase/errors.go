package usecase

import "errors"

var (
	// ErrNoData is returned by a source that answered but had nothing usable.
	ErrNoData = errors.New("no data")
	// ErrPriceUnavailable means no live strategy produced a positive price.
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrRateLimited is returned by a source whose local request budget is spent.
	ErrRateLimited = errors.New("rate limited")
)
