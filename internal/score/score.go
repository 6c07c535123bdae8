// Package score computes the acquisition-fit composite score for a lead.
//
// The composite is the sum of four bounded subscores: title seniority,
// revenue band, industry fit, and a contact-completeness bonus. All
// subscores are pure functions of the lead's fields; malformed input
// always degrades to a floor score, never an error.
package score

import (
	"strconv"
	"strings"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

// keywordRung is one entry in an ordered keyword ladder. The first rung
// whose keywords match wins, so ladder order encodes priority.
type keywordRung struct {
	keywords []string
	score    int
}

// titleLadder ranks job titles by seniority, most senior first. A title
// matching several rungs always takes the first match.
var titleLadder = []keywordRung{
	{[]string{"ceo", "chief executive", "founder", "president"}, 10},
	{[]string{"cfo", "chief financial"}, 9},
	{[]string{"cto", "chief technology", "chief technical"}, 8},
	{[]string{"vp", "vice president", "svp"}, 7},
	{[]string{"director", "head of"}, 5},
	{[]string{"manager", "lead"}, 3},
}

const titleFloor = 1

// industryLadder ranks industries by strategic fit.
var industryLadder = []keywordRung{
	{[]string{"saas", "software", "technology", "fintech"}, 8},
	{[]string{"subscription", "membership", "recurring"}, 7},
	{[]string{"healthcare", "education", "consulting"}, 6},
	{[]string{"manufacturing", "logistics", "distribution"}, 4},
}

const industryFloor = 2

// Anchor amounts for descriptive revenue sizes.
var sizeDescriptors = map[string]float64{
	"small":  5e6,
	"medium": 100e6,
	"large":  1e9,
}

// Revenue band boundaries. The sweet spot for acquisition targets is
// $10M-$100M annual revenue; above that scores moderate because the
// company is likely too large for a search fund.
const (
	sweetSpotLow  = 10_000_000
	sweetSpotHigh = 100_000_000
)

// Title scores a job title on the seniority ladder, 1-10.
func Title(title string) int {
	return matchLadder(title, titleLadder, titleFloor)
}

// Industry scores an industry label on the fit ladder, 2-8.
func Industry(industry string) int {
	return matchLadder(industry, industryLadder, industryFloor)
}

func matchLadder(s string, ladder []keywordRung, floor int) int {
	lower := strings.ToLower(s)
	for _, rung := range ladder {
		for _, kw := range rung.keywords {
			if strings.Contains(lower, kw) {
				return rung.score
			}
		}
	}
	return floor
}

// ParseRevenue normalizes free-text revenue into a dollar amount.
// It strips currency symbols and thousands separators, maps the
// small/medium/large descriptors to anchor amounts, and expands M/B
// suffixes before the numeric parse. Unparseable input returns 0.
func ParseRevenue(revenue string) float64 {
	s := strings.ToLower(strings.TrimSpace(revenue))
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")

	if anchor, ok := sizeDescriptors[s]; ok {
		return anchor
	}

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "b"):
		mult = 1e9
		s = strings.TrimSuffix(s, "b")
	case strings.HasSuffix(s, "m"):
		mult = 1e6
		s = strings.TrimSuffix(s, "m")
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return n * mult
}

// Revenue scores free-text revenue on a 1-10 band scale.
func Revenue(revenue string) int {
	rev := ParseRevenue(revenue)
	switch {
	case rev <= 0:
		return 1
	case rev > sweetSpotHigh:
		// Likely too large for a typical search fund.
		return 4
	case rev >= sweetSpotLow:
		return 10
	case rev >= 5_000_000:
		return 8
	case rev >= 1_000_000:
		return 6
	default:
		return 2
	}
}

// ContactBonus scores contact completeness 0-5: +2 for a phone, +2 for
// a LinkedIn profile, +1 for a website. Evaluated on the lead's state
// after enrichment.
func ContactBonus(lead *model.Lead) int {
	bonus := 0
	if lead.Phone != "" {
		bonus += 2
	}
	if lead.LinkedInURL != "" {
		bonus += 2
	}
	if lead.Website != "" {
		bonus++
	}
	return bonus
}

// Composite returns the total lead score, the sum of all four
// subscores. Deterministic for an unmutated lead.
func Composite(lead *model.Lead) int {
	return Title(lead.Title) + Revenue(lead.Revenue) + Industry(lead.Industry) + ContactBonus(lead)
}
