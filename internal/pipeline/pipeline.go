// Package pipeline orchestrates lead processing: deduplication,
// enrichment, scoring, outreach rendering, and aggregate statistics.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/caprae-capital/leadgen-cli/internal/enrich"
	"github.com/caprae-capital/leadgen-cli/internal/model"
	"github.com/caprae-capital/leadgen-cli/internal/outreach"
	"github.com/caprae-capital/leadgen-cli/internal/score"
)

// BatchOptions controls per-batch behavior.
type BatchOptions struct {
	// ExistingEmails holds normalized emails already present in the
	// caller's holding collection. When non-nil, input leads matching
	// one are dropped (cross-batch dedup). Nil means batch-local
	// dedup only.
	ExistingEmails map[string]bool

	// SkipRenderFailures drops a lead whose outreach message cannot
	// be rendered instead of aborting the batch. The failing lead is
	// never emitted either way, since an emitted lead must carry a
	// non-empty message.
	SkipRenderFailures bool
}

// BatchResult is the outcome of one processed batch.
type BatchResult struct {
	Leads   []model.Lead `json:"leads"`
	Emitted int          `json:"count"`
	Dropped int          `json:"duplicates_removed"`
	Skipped int          `json:"render_failures_skipped"`
}

// Pipeline runs the per-batch lead processing state machine:
// received, deduplicated, enriched, scored, templated, sorted.
type Pipeline struct {
	enricher *enrich.Enricher
	renderer *outreach.Renderer
	now      func() time.Time
}

// New creates a Pipeline.
func New(enricher *enrich.Enricher, renderer *outreach.Renderer) *Pipeline {
	return &Pipeline{
		enricher: enricher,
		renderer: renderer,
		now:      time.Now,
	}
}

// WithNow fixes the processing timestamp for testing.
func (p *Pipeline) WithNow(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// ProcessBatch takes raw leads in input order and returns fully
// processed leads sorted by score descending (stable, so equal scores
// keep their input order). Enrichment and scoring problems degrade
// per lead and never abort the batch; a render failure is the only
// hard per-lead error, and aborts unless the caller opted to skip.
func (p *Pipeline) ProcessBatch(ctx context.Context, raw []model.Lead, opts BatchOptions) (*BatchResult, error) {
	log := zap.L().With(zap.Int("input", len(raw)))

	unique := dedupe(raw, opts.ExistingEmails)
	result := &BatchResult{Dropped: len(raw) - len(unique)}

	for i := range unique {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "pipeline: batch canceled")
		}
		lead := &unique[i]

		// Enrichment always precedes scoring: the contact bonus reads
		// the post-enrichment state.
		p.enricher.Enrich(ctx, lead)
		lead.Score = score.Composite(lead)

		msg, err := p.renderer.Render(lead)
		if err != nil {
			if opts.SkipRenderFailures {
				result.Skipped++
				log.Warn("pipeline: skipping lead, outreach render failed",
					zap.String("email", lead.NormalizedEmail()),
					zap.Error(err),
				)
				continue
			}
			return nil, eris.Wrapf(err, "pipeline: render outreach for %q", lead.NormalizedEmail())
		}
		lead.OutreachEmail = msg
		lead.StampCreatedAt(p.now())

		result.Leads = append(result.Leads, *lead)
	}

	sort.SliceStable(result.Leads, func(i, j int) bool {
		return result.Leads[i].Score > result.Leads[j].Score
	})
	result.Emitted = len(result.Leads)

	log.Info("pipeline: batch processed",
		zap.Int("emitted", result.Emitted),
		zap.Int("duplicates_removed", result.Dropped),
		zap.Int("render_failures_skipped", result.Skipped),
	)
	return result, nil
}

// dedupe walks leads in input order keeping the first occurrence per
// normalized email. Leads whose email already appears in existing are
// dropped as cross-batch duplicates. Leads with an empty email pass
// through undeduplicated; they carry no identity to collide on.
func dedupe(raw []model.Lead, existing map[string]bool) []model.Lead {
	seen := make(map[string]bool, len(raw))
	out := make([]model.Lead, 0, len(raw))

	for _, lead := range raw {
		email := lead.NormalizedEmail()
		if email != "" {
			if seen[email] || existing[email] {
				continue
			}
			seen[email] = true
		}
		lead.Email = email
		out = append(out, lead)
	}
	return out
}
