package strategy

import (
	"testing"

	"github.com/jonathan/resume-assist/internal/types"
	"github.com/stretchr/testify/assert"
)

func profileWithTotal(total string) *types.NormalizedProfile {
	p := types.NewNormalizedProfile()
	p.TotalExperience = total
	return p
}

func TestSelect_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		total string
		years int
		typ   types.StrategyType
		level types.RequirementLevel
	}{
		{name: "zero", total: "", years: 0, typ: types.StrategyFresher, level: types.LevelEntry},
		{name: "one year string", total: "1 year", years: 1, typ: types.StrategyFresher, level: types.LevelEntry},
		{name: "fractional below two", total: "1.9", years: 1, typ: types.StrategyFresher, level: types.LevelEntry},
		{name: "decimal years string", total: "1.9 years", years: 1, typ: types.StrategyFresher, level: types.LevelEntry},
		{name: "half year abbreviated", total: "0.5 yrs", years: 0, typ: types.StrategyFresher, level: types.LevelEntry},
		{name: "one and a half years", total: "1.5 years", years: 1, typ: types.StrategyFresher, level: types.LevelEntry},
		{name: "decimal in sentence", total: "about 3.5 years in fintech", years: 3, typ: types.StrategyExperienced, level: types.LevelMid},
		{name: "two years", total: "2 years", years: 2, typ: types.StrategyExperienced, level: types.LevelMid},
		{name: "four plus years", total: "4+ years", years: 4, typ: types.StrategyExperienced, level: types.LevelMid},
		{name: "five numeric", total: "5", years: 5, typ: types.StrategyExperienced, level: types.LevelSenior},
		{name: "twelve years", total: "12 Years", years: 12, typ: types.StrategyExperienced, level: types.LevelSenior},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Select(profileWithTotal(tt.total))
			assert.Equal(t, tt.years, s.Years)
			assert.Equal(t, tt.typ, s.Type)
			assert.Equal(t, tt.level, s.RequirementLevel)
			assert.NotEmpty(t, s.Recommendation)
		})
	}
}

func TestYears_FallsBackToExperienceCount(t *testing.T) {
	p := profileWithTotal("a while")
	p.Experience = []types.Experience{{Company: "A"}, {Company: "B"}, {Company: "C"}}

	assert.Equal(t, 3, Years(p))
	assert.Equal(t, types.LevelMid, Select(p).RequirementLevel)
}

func TestYears_NilProfile(t *testing.T) {
	assert.Equal(t, 0, Years(nil))
	assert.Equal(t, types.StrategyFresher, Select(nil).Type)
}

func TestYears_NegativeNumberIgnored(t *testing.T) {
	assert.Equal(t, 0, Years(profileWithTotal("-3")))
}

func TestYears_ClampsHugeValues(t *testing.T) {
	tests := []string{"1e20", "99999999999999999999 years", "+Inf"}
	for _, total := range tests {
		t.Run(total, func(t *testing.T) {
			s := Select(profileWithTotal(total))
			assert.Equal(t, maxYears, s.Years)
			assert.GreaterOrEqual(t, s.Years, 0)
			assert.Equal(t, types.LevelSenior, s.RequirementLevel)
		})
	}
}

func TestSelect_RecommendationByType(t *testing.T) {
	fresher := Select(profileWithTotal("0"))
	experienced := Select(profileWithTotal("6 years"))

	assert.Contains(t, fresher.Recommendation, "FRESHER")
	assert.Contains(t, experienced.Recommendation, "EXPERIENCED")
	assert.NotEqual(t, fresher.Recommendation, experienced.Recommendation)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, types.LevelEntry, Level(0))
	assert.Equal(t, types.LevelEntry, Level(1))
	assert.Equal(t, types.LevelMid, Level(2))
	assert.Equal(t, types.LevelMid, Level(4))
	assert.Equal(t, types.LevelSenior, Level(5))
}
