package mock

import (
	"strings"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
)

// mfapi と同じ dd-mm-yyyy 形式
const navDateLayout = "02-01-2006"

// Fund はスキームコードから決まる疑似ファンドを返します。
func (g *Generator) Fund(schemeCode, name string) entity.FundRecord {
	r := g.rng("fund", schemeCode)
	nav := 50 + r.Float64()*150

	house := name
	if fields := strings.Fields(name); len(fields) > 0 {
		house = fields[0]
	}

	return entity.FundRecord{
		SchemeCode:      schemeCode,
		SchemeName:      name,
		FundHouse:       house + " Mutual Fund",
		SchemeType:      "Open Ended",
		SchemeCategory:  "Equity - Large Cap",
		NAV:             entity.Money(nav),
		NAVDate:         g.today().Format(navDateLayout),
		OneYearReturn:   entity.OptionalMoney(5 + r.Float64()*25),
		ThreeYearReturn: entity.OptionalMoney(8 + r.Float64()*15),
		FiveYearReturn:  entity.OptionalMoney(10 + r.Float64()*12),
		Source:          usecase.SourceMock,
	}
}
