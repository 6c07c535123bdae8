package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "sarah.chen@techventure.com", NormalizeEmail("  Sarah.Chen@TechVenture.com "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestNormalizedEmail(t *testing.T) {
	l := Lead{Email: "M.Roberts@DataFlow.com"}
	assert.Equal(t, "m.roberts@dataflow.com", l.NormalizedEmail())
}

func TestFullName(t *testing.T) {
	l := Lead{FirstName: "Sarah", LastName: "Chen"}
	assert.Equal(t, "Sarah Chen", l.FullName())

	l = Lead{FirstName: "Sarah"}
	assert.Equal(t, "Sarah", l.FullName())

	l = Lead{}
	assert.Equal(t, "", l.FullName())
}

func TestStampCreatedAt(t *testing.T) {
	l := Lead{}
	l.StampCreatedAt(time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, "2025-06-15 09:30:00", l.CreatedAt)
}
