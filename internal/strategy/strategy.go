// Package strategy classifies a normalized profile into a career-stage resume strategy.
package strategy

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
)

const (
	// experiencedThreshold is the minimum number of years for the experienced strategy
	experiencedThreshold = 2
	// seniorThreshold is the minimum number of years for the senior requirement level
	seniorThreshold = 5
	// maxYears caps implausible values such as "1e20"
	maxYears = 80
)

// yearsRe matches "N years", "1.5 yrs" or "4+ years". The leading group keeps
// it from starting inside a decimal.
var yearsRe = regexp.MustCompile(`(?i)(?:^|[^\d.])(\d+(?:\.\d+)?)\+?\s*(?:year|yr)`)

// Recommendation templates passed to the generation prompt as guidance text.
const (
	fresherRecommendation = `FRESHER STRATEGY:
- Lead with education, academic projects, internships and certifications.
- Put the Projects section before any work experience and describe each project with the problem, the stack and the outcome.
- Highlight transferable skills, coursework and hackathons relevant to the target role.
- Do NOT state or imply years of professional experience the candidate does not have.
- Keep the resume to one page.`

	experiencedRecommendation = `EXPERIENCED STRATEGY:
- Lead with a professional summary that states the candidate's actual years of experience and core domain.
- Put Professional Experience first, most recent role first, with 3-5 quantified achievement bullets per role.
- Emphasize ownership, scope, leadership and measurable business impact.
- Keep education brief; omit academic projects unless they are directly relevant.
- Keep the resume to one page for under 10 years of experience, two pages otherwise.`
)

// Select derives the resume strategy for a profile. It is a pure function.
func Select(p *types.NormalizedProfile) types.ResumeStrategy {
	years := Years(p)

	s := types.ResumeStrategy{
		Years:            years,
		RequirementLevel: Level(years),
	}
	if years < experiencedThreshold {
		s.Type = types.StrategyFresher
		s.Recommendation = fresherRecommendation
	} else {
		s.Type = types.StrategyExperienced
		s.Recommendation = experiencedRecommendation
	}
	return s
}

// Years extracts the candidate's years of experience. It prefers a "N years"
// match in TotalExperience, then a bare number, then one year per experience
// entry, and finally zero.
func Years(p *types.NormalizedProfile) int {
	if p == nil {
		return 0
	}
	total := strings.TrimSpace(p.TotalExperience)
	if m := yearsRe.FindStringSubmatch(total); m != nil {
		if n, ok := wholeYears(m[1]); ok {
			return n
		}
	}
	if n, ok := wholeYears(total); ok {
		return n
	}
	return len(p.Experience)
}

// wholeYears floors a non-negative number and clamps it to maxYears
func wholeYears(s string) (int, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f < 0 {
		return 0, false
	}
	return int(math.Floor(math.Min(f, maxYears))), true
}

// Level maps years of experience to a requirement level:
// under 2 entry-level, 2 to under 5 mid-level, 5 and above senior.
func Level(years int) types.RequirementLevel {
	switch {
	case years < experiencedThreshold:
		return types.LevelEntry
	case years < seniorThreshold:
		return types.LevelMid
	default:
		return types.LevelSenior
	}
}
