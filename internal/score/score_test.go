package score

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		title string
		want  int
	}{
		{"Chief Executive Officer", 10},
		{"CEO", 10},
		{"Founder & Owner", 10},
		{"President", 10},
		{"CFO", 9},
		{"Chief Financial Officer", 9},
		{"CTO", 8},
		{"VP of Sales", 7},
		{"SVP Operations", 7},
		{"Director of Engineering", 5},
		{"Head of Growth", 5},
		{"Regional Manager", 3},
		{"Team Lead", 3},
		{"Intern", 1},
		{"", 1},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.title))
		})
	}
}

func TestTitle_SeniorityOrderWins(t *testing.T) {
	// A title matching several rungs always takes the most senior one.
	assert.Equal(t, 7, Title("VP and Director"))
	assert.Equal(t, 10, Title("Founder and CTO"))
}

func TestParseRevenue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"25000000", 25_000_000},
		{"$5,000,000", 5_000_000},
		{"150M", 150_000_000},
		{"1.5M", 1_500_000},
		{"2B", 2e9},
		{"small", 5e6},
		{"Medium", 100e6},
		{"large", 1e9},
		{"n/a", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRevenue(tt.in))
		})
	}
}

func TestRevenue(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"25000000", 10},  // sweet spot
		{"10000000", 10},  // inclusive low edge
		{"100000000", 10}, // inclusive high edge
		{"$5,000,000", 8},
		{"150M", 4}, // expands to 150,000,000 — above the sweet spot
		{"3000000", 6},
		{"500000", 2},
		{"n/a", 1},
		{"-5", 1},
		{"", 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%d", tt.in, tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, Revenue(tt.in))
		})
	}
}

func TestIndustry(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"SaaS", 8},
		{"Software", 8},
		{"Fintech", 8},
		{"Subscription Boxes", 7},
		{"Healthcare", 6},
		{"Consulting", 6},
		{"Manufacturing", 4},
		{"Logistics", 4},
		{"Agriculture", 2},
		{"", 2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Industry(tt.in))
		})
	}
}

func TestContactBonus(t *testing.T) {
	lead := &model.Lead{}
	assert.Equal(t, 0, ContactBonus(lead))

	lead.Phone = "+1-555-867-5309"
	assert.Equal(t, 2, ContactBonus(lead))

	lead.LinkedInURL = "https://linkedin.com/in/sarah-chen"
	assert.Equal(t, 4, ContactBonus(lead))

	lead.Website = "https://www.techventure.com"
	assert.Equal(t, 5, ContactBonus(lead))
}

func TestComposite(t *testing.T) {
	lead := &model.Lead{
		Title:       "CEO",
		Revenue:     "25000000",
		Industry:    "SaaS",
		Phone:       "+1-555-867-5309",
		LinkedInURL: "https://linkedin.com/in/sarah-chen",
		Website:     "https://www.techventure.com",
	}
	// 10 + 10 + 8 + 5
	assert.Equal(t, 33, Composite(lead))
}

func TestComposite_Pure(t *testing.T) {
	lead := &model.Lead{Title: "VP of Sales", Revenue: "8M", Industry: "Consulting"}
	first := Composite(lead)
	assert.Equal(t, first, Composite(lead))
}
