package enrich

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

// Fixed pools for synthetic values. Small on purpose: the fallback
// fabricates plausible data, it does not guess real data.
var (
	metroAreas = []string{
		"New York, NY",
		"San Francisco, CA",
		"Austin, TX",
		"Seattle, WA",
	}
	employeeBands = []string{
		"10-50",
		"51-200",
		"201-500",
		"501-1000",
	}
)

// Synthesizer generates fabricated contact data with an injectable
// random source so tests can assert exact output.
type Synthesizer struct {
	rng *rand.Rand
}

// NewSynthesizer creates a Synthesizer. A nil rng gets a time-seeded one.
func NewSynthesizer(rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{rng: rng}
}

// Contact fabricates a full contact record for the lead.
func (s *Synthesizer) Contact(lead *model.Lead) ContactData {
	return ContactData{
		Phone:       s.phone(),
		LinkedInURL: linkedInURL(lead.FirstName, lead.LastName),
		Website:     websiteURL(lead.CompanyName),
		Location:    metroAreas[s.rng.Intn(len(metroAreas))],
		Employees:   employeeBands[s.rng.Intn(len(employeeBands))],
	}
}

// phone fabricates a US number and normalizes it through the phone
// number library so it carries the same shape as real lookup data.
func (s *Synthesizer) phone() string {
	raw := fmt.Sprintf("+1%03d%03d%04d",
		200+s.rng.Intn(800), // avoid invalid 0xx/1xx area codes
		200+s.rng.Intn(800),
		s.rng.Intn(10000),
	)
	num, err := phonenumbers.Parse(raw, "US")
	if err != nil {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

// linkedInURL builds a profile URL from the lead's name.
func linkedInURL(first, last string) string {
	slug := strings.ToLower(strings.TrimSpace(first)) + "-" + strings.ToLower(strings.TrimSpace(last))
	return "https://linkedin.com/in/" + strings.Trim(slug, "-")
}

// websiteURL guesses a domain from the company name, lower-cased with
// whitespace stripped.
func websiteURL(company string) string {
	domain := strings.ToLower(strings.ReplaceAll(company, " ", ""))
	if domain == "" {
		return ""
	}
	return "https://www." + domain + ".com"
}
