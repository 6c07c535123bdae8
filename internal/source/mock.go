// Package source provides input adapters that produce raw leads from
// named origins: static mock datasets standing in for the external
// scrapers, and CSV uploads.
package source

import (
	"context"
	"sort"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

// Adapter produces zero or more raw leads for a query. An adapter may
// always return an empty slice; callers fall back to another source.
type Adapter interface {
	Fetch(ctx context.Context, query string) ([]model.Lead, error)
}

// AdapterFunc adapts a function to the Adapter interface.
type AdapterFunc func(ctx context.Context, query string) ([]model.Lead, error)

func (f AdapterFunc) Fetch(ctx context.Context, query string) ([]model.Lead, error) {
	return f(ctx, query)
}

// mockAdapters maps source tags to deterministic datasets shaped like
// the upstream aggregators they stand in for.
var mockAdapters = map[string]AdapterFunc{
	"apollo":      apolloMock,
	"linkedin":    linkedinMock,
	"crunchbase":  crunchbaseMock,
	"google_maps": googleMapsMock,
}

// Mock returns the adapter registered for tag, or nil.
func Mock(tag string) Adapter {
	if a, ok := mockAdapters[tag]; ok {
		return a
	}
	return nil
}

// MockTags lists the registered mock source tags, sorted.
func MockTags() []string {
	tags := make([]string, 0, len(mockAdapters))
	for tag := range mockAdapters {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func mockLead(first, last, company, title, revenue, industry, email, src string) model.Lead {
	return model.Lead{
		FirstName:   first,
		LastName:    last,
		CompanyName: company,
		Title:       title,
		Revenue:     revenue,
		Industry:    industry,
		Email:       email,
		Source:      src,
	}
}

func apolloMock(_ context.Context, _ string) ([]model.Lead, error) {
	return []model.Lead{
		mockLead("Sarah", "Chen", "TechVenture", "CEO", "25000000", "Technology", "sarah.chen@techventure.com", "Apollo"),
		mockLead("Michael", "Roberts", "DataFlow", "CTO", "15000000", "Software", "m.roberts@dataflow.com", "Apollo"),
		mockLead("Jennifer", "Kim", "CloudScale", "VP Engineering", "40000000", "SaaS", "jennifer.kim@cloudscale.com", "Apollo"),
	}, nil
}

func linkedinMock(_ context.Context, _ string) ([]model.Lead, error) {
	return []model.Lead{
		mockLead("David", "Thompson", "InnovaCorp", "CFO", "35000000", "Fintech", "david.thompson@innovacorp.com", "LinkedIn"),
		mockLead("Lisa", "Wang", "GrowthLabs", "VP Sales", "12000000", "Marketing Tech", "lisa.wang@growthlabs.com", "LinkedIn"),
	}, nil
}

func crunchbaseMock(_ context.Context, _ string) ([]model.Lead, error) {
	return []model.Lead{
		mockLead("Robert", "Martinez", "ScaleUp", "Founder", "8000000", "E-commerce", "robert@scaleup.com", "Crunchbase"),
		mockLead("Amanda", "Foster", "NextGen", "Co-Founder", "20000000", "Healthcare Tech", "amanda.foster@nextgen.com", "Crunchbase"),
	}, nil
}

func googleMapsMock(_ context.Context, _ string) ([]model.Lead, error) {
	return []model.Lead{
		mockLead("James", "Wilson", "Local Solutions", "Owner", "2000000", "Services", "james@localsolutions.com", "Google Maps"),
		mockLead("Maria", "Garcia", "Regional Consulting", "Principal", "5000000", "Consulting", "maria.garcia@regionalconsulting.com", "Google Maps"),
	}, nil
}
