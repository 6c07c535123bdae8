package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRegistration(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"process", "scrape", "leads", "stats", "export", "serve", "version"} {
		assert.True(t, names[want], "command %q not registered", want)
	}
}

func TestLeadsDeleteRegistration(t *testing.T) {
	var found bool
	for _, c := range leadsCmd.Commands() {
		if c.Name() == "delete" {
			found = true
		}
	}
	assert.True(t, found)
}
