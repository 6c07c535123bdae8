package model

import (
	"strings"
	"time"
)

// Lead represents one contact/company record flowing through the
// processing pipeline. Identity and firmographic fields come from an
// input adapter; contact fields are filled by enrichment; score,
// outreach message, and timestamp are set by the pipeline.
type Lead struct {
	ID string `json:"id" csv:"-"`

	FirstName   string `json:"first_name" csv:"first_name"`
	LastName    string `json:"last_name" csv:"last_name"`
	CompanyName string `json:"company_name" csv:"company_name"`
	Title       string `json:"title" csv:"title"`
	Revenue     string `json:"revenue" csv:"revenue"`
	Industry    string `json:"industry" csv:"industry"`
	Email       string `json:"email" csv:"email"`

	Phone       string `json:"phone" csv:"phone"`
	LinkedInURL string `json:"linkedin_url" csv:"linkedin_url"`
	Website     string `json:"website" csv:"website"`
	Location    string `json:"location" csv:"location"`
	Employees   string `json:"employees" csv:"employees"`
	Source      string `json:"source" csv:"source"`

	Score         int    `json:"score" csv:"score"`
	OutreachEmail string `json:"email_template" csv:"-"`
	Enriched      bool   `json:"enriched" csv:"-"`
	CreatedAt     string `json:"created_date" csv:"created_date"`
}

// NormalizeEmail canonicalizes an email for deduplication: trimmed and
// lower-cased. The empty string is returned unchanged.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizedEmail returns the lead's dedup key.
func (l *Lead) NormalizedEmail() string {
	return NormalizeEmail(l.Email)
}

// FullName returns "First Last", trimmed if either part is missing.
func (l *Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

// TimestampFormat is the layout used for Lead.CreatedAt.
const TimestampFormat = "2006-01-02 15:04:05"

// StampCreatedAt records the processing time on the lead.
func (l *Lead) StampCreatedAt(now time.Time) {
	l.CreatedAt = now.Format(TimestampFormat)
}
