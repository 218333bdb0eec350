// Package mock は外部ソースがすべて失敗した場合に使う決定的な疑似データを生成します。
package mock

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
)

const (
	// DefaultSeed は乱数系列の既定シードです。
	DefaultSeed uint64 = 42

	mockExchange = "NASDAQ"
	mockCurrency = "USD"
	dayLayout    = "2006-01-02"
)

// Generator は同じシード・銘柄・基準日に対して常に同じ結果を返します。
type Generator struct {
	seed uint64
	now  func() time.Time
}

var _ usecase.MockSource = (*Generator)(nil)

// Option はGeneratorの設定を変更します。
type Option func(*Generator)

// WithClock は基準日の算出に使う時計を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator は新しいGeneratorを生成します。
func NewGenerator(seed uint64, opts ...Option) *Generator {
	g := &Generator{seed: seed, now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

// rng はシードと文字列の組から独立した乱数系列を作ります。
func (g *Generator) rng(parts ...string) *rand.Rand {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return rand.New(rand.NewPCG(g.seed, h.Sum64()))
}

func (g *Generator) today() time.Time {
	y, m, d := g.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Profile は銘柄のプロファイルを返します。未知の銘柄には銘柄コードから決まる汎用プロファイルを返します。
func (g *Generator) Profile(ticker string) Profile {
	if p, ok := profiles[ticker]; ok {
		return p
	}
	r := g.rng("profile", ticker)
	return Profile{
		Name:          ticker,
		Price:         100 + r.Float64()*200,
		ChangePercent: r.Float64()*6 - 3,
		MarketCap:     50e9,
		PERatio:       25,
		Sector:        "Technology",
		Industry:      "Software",
	}
}

// Quote は基準価格に±1%の揺らぎを加えたクォートを返します。揺らぎは日ごとに変わります。
func (g *Generator) Quote(ticker string) entity.Quote {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	p := g.Profile(ticker)
	r := g.rng("quote", ticker, g.today().Format(dayLayout))

	price := p.Price * (1 + (r.Float64()-0.5)*0.02)
	change := price * p.ChangePercent / 100

	return entity.Quote{
		Ticker:           ticker,
		Name:             p.Name,
		Exchange:         mockExchange,
		Currency:         mockCurrency,
		Price:            entity.Money(price),
		Change:           entity.Money(change),
		ChangePercent:    entity.Money(p.ChangePercent),
		Open:             entity.Money(price * 0.99),
		High:             entity.Money(price * 1.02),
		Low:              entity.Money(price * 0.98),
		PreviousClose:    entity.Money(price - change),
		Volume:           int64(r.Float64() * 50e6),
		AvgVolume:        int64(r.Float64() * 30e6),
		MarketCap:        entity.OptionalMoney(p.MarketCap),
		PERatio:          entity.OptionalMoney(p.PERatio),
		EPS:              entity.OptionalMoney(price / p.PERatio),
		FiftyTwoWeekHigh: entity.OptionalMoney(price * 1.3),
		FiftyTwoWeekLow:  entity.OptionalMoney(price * 0.7),
		Sector:           p.Sector,
		Industry:         p.Industry,
		AsOf:             g.now(),
		Source:           usecase.SourceMock,
	}
}

// History はプロファイルの基準価格に収束するランダムウォーク系列とクォートを返します。
func (g *Generator) History(ticker string, span entity.Span) entity.StockHistory {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	p := g.Profile(ticker)
	r := g.rng("history-quote", ticker)

	base := p.Price
	change := base * p.ChangePercent / 100
	q := entity.Quote{
		Ticker:           ticker,
		Name:             p.Name,
		Exchange:         mockExchange,
		Currency:         mockCurrency,
		Price:            entity.Money(base),
		Change:           entity.Money(change),
		ChangePercent:    entity.Money(p.ChangePercent),
		Open:             entity.Money(base * 0.995),
		High:             entity.Money(base * 1.02),
		Low:              entity.Money(base * 0.98),
		PreviousClose:    entity.Money(base - change),
		Volume:           int64(r.Float64()*50e6 + 10e6),
		AvgVolume:        int64(r.Float64()*30e6 + 15e6),
		MarketCap:        entity.OptionalMoney(p.MarketCap),
		PERatio:          entity.OptionalMoney(p.PERatio),
		EPS:              entity.OptionalMoney(base / p.PERatio),
		FiftyTwoWeekHigh: entity.OptionalMoney(base * 1.35),
		FiftyTwoWeekLow:  entity.OptionalMoney(base * 0.65),
		Sector:           p.Sector,
		Industry:         p.Industry,
		AsOf:             g.now(),
		Source:           usecase.SourceMock,
	}
	return entity.StockHistory{Quote: q, Series: g.Series(ticker, base, span.Days())}
}

// Series は基準日のdays日前から前日までの平日について日足を生成します。
// 終値はcurrentの半値を下回りません。
func (g *Generator) Series(ticker string, current float64, days int) []entity.HistoricalPoint {
	if days <= 0 || current <= 0 {
		return []entity.HistoricalPoint{}
	}
	r := g.rng("history", ticker)
	day := g.today().AddDate(0, 0, -days)

	price := current * (0.7 + r.Float64()*0.2)
	trend := (current - price) / float64(days)
	floor := current * 0.5

	series := make([]entity.HistoricalPoint, 0, days*5/7+1)
	for i := 0; i < days; i, day = i+1, day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		price = math.Max(price+(r.Float64()-0.45)*0.03*price+trend, floor)

		high := price * (1 + r.Float64()*0.02)
		low := price * (1 - r.Float64()*0.02)
		open := (high+low)/2 + (r.Float64()-0.5)*(high-low)

		series = append(series, entity.HistoricalPoint{
			Date:   day,
			Open:   entity.Money(open),
			High:   entity.Money(high),
			Low:    entity.Money(low),
			Close:  entity.Money(price),
			Volume: int64(r.Float64()*50e6 + 5e6),
		})
	}
	return series
}

// Index は固定の基準値と日ごとに決まる騰落率で指数を返します。
func (g *Generator) Index(symbol, name string) entity.MarketIndex {
	p, ok := indexProfiles[symbol]
	if !ok {
		p = defaultIndexProfile
	}
	r := g.rng("index", symbol, g.today().Format(dayLayout))
	pct := r.Float64()*p.spread + p.changeMin

	return entity.MarketIndex{
		Symbol:        symbol,
		Name:          name,
		Value:         entity.Money(p.base),
		Change:        entity.Money(p.base * pct / 100),
		ChangePercent: entity.Money(pct),
		Source:        usecase.SourceMock,
		AsOf:          g.now(),
	}
}
