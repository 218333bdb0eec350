package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFundUsecase_GetTopMutualFunds は一覧の並び順とキャッシュを検証します。
func TestFundUsecase_GetTopMutualFunds(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	r := newStubResolver(nil)
	uc := NewFundUsecase(r, newMemStore(clock.Now), 0, clock.Now)

	funds := uc.GetTopMutualFunds(context.Background())
	require.Len(t, funds, len(PopularFunds))
	for i, f := range funds {
		assert.Equal(t, PopularFunds[i].SchemeCode, f.SchemeCode)
	}

	uc.GetTopMutualFunds(context.Background())
	assert.Equal(t, 1, r.count("fund:"+PopularFunds[0].SchemeCode))
}

// TestFundUsecase_GetFundDetail は既知のコードでは一覧の名称を、未知のコードでは既定名を使うことを検証します。
func TestFundUsecase_GetFundDetail(t *testing.T) {
	t.Parallel()
	r := newStubResolver(nil)
	uc := NewFundUsecase(r, nil, 0, nil)

	known := uc.GetFundDetail(context.Background(), " 119551 ")
	unknown := uc.GetFundDetail(context.Background(), "999999")

	assert.Equal(t, "119551", known.SchemeCode)
	assert.Equal(t, "Axis Bluechip Fund", known.SchemeName)
	assert.Equal(t, unknownFundName, unknown.SchemeName)
	assert.Equal(t, []string{"Axis Bluechip Fund", unknownFundName}, r.fundSeen)
}

// TestFundUsecase_SearchFunds はスキーム名と運用会社名の大文字小文字を区別しない部分一致を検証します。
func TestFundUsecase_SearchFunds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		wantCodes []string
	}{
		{name: "by scheme name", query: "flexi", wantCodes: []string{"100468", "120505"}},
		{name: "by fund house", query: "HOUSE OF SBI", wantCodes: []string{"118989"}},
		{name: "empty returns all", query: "  ", wantCodes: nil},
		{name: "no match", query: "gold etf", wantCodes: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := NewFundUsecase(newStubResolver(nil), nil, 0, nil)

			got := uc.SearchFunds(context.Background(), tt.query)

			if tt.wantCodes == nil {
				assert.Len(t, got, len(PopularFunds))
				return
			}
			codes := make([]string, 0, len(got))
			for _, f := range got {
				codes = append(codes, f.SchemeCode)
			}
			assert.Equal(t, tt.wantCodes, codes)
		})
	}
}
