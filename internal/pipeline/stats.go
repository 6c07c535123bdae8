package pipeline

import (
	"math"
	"sort"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

// IndustryCount pairs an industry label with its lead count.
type IndustryCount struct {
	Industry string `json:"industry"`
	Count    int    `json:"count"`
}

// Summary holds aggregate statistics over a lead collection.
type Summary struct {
	Total         int             `json:"total_leads"`
	AverageScore  float64         `json:"avg_score"`
	TopIndustries []IndustryCount `json:"top_industries"`
	SourceCounts  map[string]int  `json:"source_breakdown"`
	ScoreBands    map[string]int  `json:"score_distribution"`
}

// Score bands are fixed, non-overlapping, inclusive on the upper
// bound: a score of exactly 10 falls in "0-10".
var scoreBandUppers = []struct {
	label string
	upper int
}{
	{"0-10", 10},
	{"11-15", 15},
	{"16-20", 20},
}

const topBandLabel = "21+"

// scoreBand returns the histogram bucket for a score.
func scoreBand(s int) string {
	for _, b := range scoreBandUppers {
		if s <= b.upper {
			return b.label
		}
	}
	return topBandLabel
}

const maxTopIndustries = 5

// Summarize computes aggregate statistics over an arbitrary lead
// collection. An empty collection yields zeroes and empty mappings,
// never an error.
func Summarize(leads []model.Lead) Summary {
	summary := Summary{
		SourceCounts: make(map[string]int),
		ScoreBands:   make(map[string]int),
	}
	if len(leads) == 0 {
		return summary
	}

	// Every fixed band is present in a non-empty histogram, zero or not.
	for _, b := range scoreBandUppers {
		summary.ScoreBands[b.label] = 0
	}
	summary.ScoreBands[topBandLabel] = 0

	total := 0
	industryCounts := make(map[string]int)
	var industryOrder []string

	for _, lead := range leads {
		total += lead.Score
		if _, seen := industryCounts[lead.Industry]; !seen {
			industryOrder = append(industryOrder, lead.Industry)
		}
		industryCounts[lead.Industry]++
		summary.SourceCounts[lead.Source]++
		summary.ScoreBands[scoreBand(lead.Score)]++
	}

	summary.Total = len(leads)
	// Half-to-even at one decimal, so 10.25 rounds to 10.2.
	summary.AverageScore = math.RoundToEven(float64(total)/float64(len(leads))*10) / 10

	// Rank industries by count descending; the stable sort keeps
	// first-seen order among ties.
	ranked := make([]IndustryCount, 0, len(industryOrder))
	for _, ind := range industryOrder {
		ranked = append(ranked, IndustryCount{Industry: ind, Count: industryCounts[ind]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > maxTopIndustries {
		ranked = ranked[:maxTopIndustries]
	}
	summary.TopIndustries = ranked

	return summary
}
