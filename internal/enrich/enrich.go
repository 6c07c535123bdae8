// Package enrich fills missing contact fields on a lead, from a
// best-effort external lookup when one is available and from a
// synthetic fallback generator otherwise.
package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

// ContactData holds the contact fields an enrichment source can supply.
type ContactData struct {
	Phone       string `json:"phone"`
	LinkedInURL string `json:"linkedin_url"`
	Website     string `json:"website"`
	Location    string `json:"location"`
	Employees   string `json:"employees"`
}

// Result is the outcome of a real-data lookup. Lookup failures are
// converted into Found=false rather than escaping as errors, so the
// synthetic fallback path is an explicit branch.
type Result struct {
	Found bool
	Data  ContactData
}

// NotFound is the Result for a lookup that produced no data.
var NotFound = Result{}

// Lookup is implemented by adapters capable of returning real contact
// data for a lead's company.
type Lookup interface {
	LookupContact(ctx context.Context, lead *model.Lead) (Result, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, lead *model.Lead) (Result, error)

func (f LookupFunc) LookupContact(ctx context.Context, lead *model.Lead) (Result, error) {
	return f(ctx, lead)
}

// Enricher runs the enrichment stage of the lead pipeline.
type Enricher struct {
	lookup  Lookup // nil means synthetic-only
	synth   *Synthesizer
	limiter *rate.Limiter
	timeout time.Duration
	delay   time.Duration
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithLookup sets the real-data lookup adapter.
func WithLookup(l Lookup) Option {
	return func(e *Enricher) { e.lookup = l }
}

// WithSynthesizer replaces the fallback generator (injectable
// randomness for tests).
func WithSynthesizer(s *Synthesizer) Option {
	return func(e *Enricher) { e.synth = s }
}

// WithRateLimit bounds real-data lookups to n per second.
func WithRateLimit(n float64) Option {
	return func(e *Enricher) { e.limiter = rate.NewLimiter(rate.Limit(n), 1) }
}

// WithLookupTimeout bounds how long a single lookup may block. A lookup
// that cannot complete in time is treated as not found.
func WithLookupTimeout(d time.Duration) Option {
	return func(e *Enricher) { e.timeout = d }
}

// WithDelay adds an artificial per-lead delay to model lookup latency.
func WithDelay(d time.Duration) Option {
	return func(e *Enricher) { e.delay = d }
}

// New creates an Enricher. Without options it runs synthetic-only with
// a 10s lookup timeout.
func New(opts ...Option) *Enricher {
	e := &Enricher{
		synth:   NewSynthesizer(nil),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich populates every contact field on the lead and marks it
// enriched. Real-lookup values win; synthetic values only fill fields
// still empty afterwards. Enrich never fails: any lookup error
// degrades to the synthetic path.
func (e *Enricher) Enrich(ctx context.Context, lead *model.Lead) {
	if e.delay > 0 {
		select {
		case <-time.After(e.delay):
		case <-ctx.Done():
		}
	}

	if res := e.tryLookup(ctx, lead); res.Found {
		applyIfEmpty(lead, res.Data)
	}

	applyIfEmpty(lead, e.synth.Contact(lead))
	lead.Enriched = true
}

// tryLookup runs the real-data lookup under the rate limit and
// timeout. Every failure mode collapses to NotFound.
func (e *Enricher) tryLookup(ctx context.Context, lead *model.Lead) Result {
	if e.lookup == nil {
		return NotFound
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return NotFound
		}
	}

	lookupCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	res, err := e.lookup.LookupContact(lookupCtx, lead)
	if err != nil {
		zap.L().Debug("enrich: lookup failed, falling back to synthetic",
			zap.String("company", lead.CompanyName),
			zap.Error(err),
		)
		return NotFound
	}
	return res
}

// applyIfEmpty copies data into the lead without overwriting any field
// that already holds a value.
func applyIfEmpty(lead *model.Lead, data ContactData) {
	if lead.Phone == "" {
		lead.Phone = data.Phone
	}
	if lead.LinkedInURL == "" {
		lead.LinkedInURL = data.LinkedInURL
	}
	if lead.Website == "" {
		lead.Website = data.Website
	}
	if lead.Location == "" {
		lead.Location = data.Location
	}
	if lead.Employees == "" {
		lead.Employees = data.Employees
	}
}
