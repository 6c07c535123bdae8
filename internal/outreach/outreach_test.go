package outreach

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{25, TierExecutive},
		{20, TierExecutive},
		{19, TierOperational},
		{17, TierOperational},
		{15, TierOperational},
		{14, TierGeneral},
		{8, TierGeneral},
		{0, TierGeneral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierForScore(tt.score), "score %d", tt.score)
	}
}

func TestRender_ExecutiveTier(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	lead := &model.Lead{
		FirstName:   "Sarah",
		CompanyName: "TechVenture",
		Title:       "CEO",
		Industry:    "Technology",
		Score:       25,
	}
	msg, err := r.Render(lead)
	require.NoError(t, err)

	assert.Contains(t, msg, "Subject: Quick chat about TechVenture's growth trajectory")
	assert.Contains(t, msg, "Hi Sarah,")
	assert.Contains(t, msg, "As CEO at TechVenture")
	assert.Contains(t, msg, "partnering with technology companies")
}

func TestRender_OperationalTier(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	lead := &model.Lead{
		FirstName:   "Lisa",
		CompanyName: "GrowthLabs",
		Title:       "VP Sales",
		Industry:    "Marketing Tech",
		Score:       17,
	}
	msg, err := r.Render(lead)
	require.NoError(t, err)

	assert.Contains(t, msg, "Subject: Operational efficiency insights for GrowthLabs")
	assert.Contains(t, msg, "position in the marketing tech space")
}

func TestRender_GeneralTier(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	lead := &model.Lead{
		FirstName:   "James",
		CompanyName: "Local Solutions",
		Title:       "Owner",
		Industry:    "Services",
		Score:       8,
	}
	msg, err := r.Render(lead)
	require.NoError(t, err)

	assert.Contains(t, msg, "Subject: Partnership opportunity for Local Solutions")
	assert.Contains(t, msg, "Hello James,")
	assert.Contains(t, msg, "innovative player in the services sector")
}

func TestRender_MissingFirstName(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	lead := &model.Lead{CompanyName: "Acme", Email: "x@acme.com"}
	_, err = r.Render(lead)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no first name")
}

func TestRender_MissingCompany(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	lead := &model.Lead{FirstName: "Jane", Email: "jane@example.com"}
	_, err = r.Render(lead)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no company name")
}

func TestNewRendererFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")
	content := "executive: |\n  Dear {{.FirstName}}, let's talk about {{.CompanyName}}.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := NewRendererFromFile(path)
	require.NoError(t, err)

	msg, err := r.Render(&model.Lead{FirstName: "Sarah", CompanyName: "TechVenture", Score: 25})
	require.NoError(t, err)
	assert.Contains(t, msg, "Dear Sarah, let's talk about TechVenture.")

	// Tiers absent from the file keep the built-in body.
	msg, err = r.Render(&model.Lead{FirstName: "James", CompanyName: "Local Solutions", Score: 8})
	require.NoError(t, err)
	assert.Contains(t, msg, "Partnership opportunity for Local Solutions")
}

func TestNewRendererFromFile_Missing(t *testing.T) {
	_, err := NewRendererFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
