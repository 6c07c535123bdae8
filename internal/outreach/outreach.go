// Package outreach renders tiered outreach messages for scored leads.
package outreach

import (
	"os"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

// Tier identifies one of the three outreach message variants.
type Tier string

const (
	TierExecutive   Tier = "executive"   // senior-executive framing
	TierOperational Tier = "operational" // operational-efficiency framing
	TierGeneral     Tier = "general"     // general-partnership framing
)

// Tier cutoffs are product policy constants. Do not derive or tune.
const (
	executiveCutoff   = 20
	operationalCutoff = 15
)

// TierForScore maps a composite score to its message tier.
func TierForScore(score int) Tier {
	switch {
	case score >= executiveCutoff:
		return TierExecutive
	case score >= operationalCutoff:
		return TierOperational
	default:
		return TierGeneral
	}
}

// templateData is the parameter set available to message bodies.
type templateData struct {
	FirstName   string
	CompanyName string
	Title       string
	Industry    string // lower-cased
}

// Renderer selects and renders the outreach message for a lead.
type Renderer struct {
	templates map[Tier]*template.Template
}

// NewRenderer returns a renderer using the built-in message bodies.
func NewRenderer() (*Renderer, error) {
	return newRenderer(defaultBodies)
}

// templateFile is the YAML shape for overriding message bodies.
type templateFile struct {
	Executive   string `yaml:"executive"`
	Operational string `yaml:"operational"`
	General     string `yaml:"general"`
}

// NewRendererFromFile loads message bodies from a YAML file. Tiers left
// empty in the file keep their built-in body.
func NewRendererFromFile(path string) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "outreach: read templates file")
	}

	var tf templateFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, eris.Wrap(err, "outreach: unmarshal templates file")
	}

	bodies := map[Tier]string{}
	for tier, body := range defaultBodies {
		bodies[tier] = body
	}
	if tf.Executive != "" {
		bodies[TierExecutive] = tf.Executive
	}
	if tf.Operational != "" {
		bodies[TierOperational] = tf.Operational
	}
	if tf.General != "" {
		bodies[TierGeneral] = tf.General
	}

	return newRenderer(bodies)
}

func newRenderer(bodies map[Tier]string) (*Renderer, error) {
	r := &Renderer{templates: make(map[Tier]*template.Template, len(bodies))}
	for tier, body := range bodies {
		tmpl, err := template.New(string(tier)).Parse(body)
		if err != nil {
			return nil, eris.Wrapf(err, "outreach: parse %s template", tier)
		}
		r.templates[tier] = tmpl
	}
	return r, nil
}

// Render produces the outreach message for a scored lead. A lead
// missing its first name or company cannot be personalized; that is
// the one per-record error the pipeline propagates, since an empty
// outreach message is never allowed on an emitted lead.
func (r *Renderer) Render(lead *model.Lead) (string, error) {
	if strings.TrimSpace(lead.FirstName) == "" {
		return "", eris.Errorf("outreach: lead %s has no first name", lead.NormalizedEmail())
	}
	if strings.TrimSpace(lead.CompanyName) == "" {
		return "", eris.Errorf("outreach: lead %s has no company name", lead.NormalizedEmail())
	}

	tier := TierForScore(lead.Score)
	tmpl := r.templates[tier]

	var sb strings.Builder
	err := tmpl.Execute(&sb, templateData{
		FirstName:   lead.FirstName,
		CompanyName: lead.CompanyName,
		Title:       lead.Title,
		Industry:    strings.ToLower(lead.Industry),
	})
	if err != nil {
		return "", eris.Wrapf(err, "outreach: render %s template", tier)
	}
	return sb.String(), nil
}
