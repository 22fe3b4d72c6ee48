package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKnownJob(t *testing.T) {
	for _, name := range jobNames {
		assert.True(t, isKnownJob(name), name)
	}
	for _, name := range []string{"", "payment-reminder", "ALL", "mark-overdue-rentals"} {
		assert.False(t, isKnownJob(name), name)
	}
}

func TestRunJobOnce_UnknownNameRunsNothing(t *testing.T) {
	// the runner is never touched for an unknown name
	assert.False(t, runJobOnce(nil, "nightly"))
}
