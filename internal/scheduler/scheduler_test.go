package scheduler

import (
	"testing"

	"avrental-backend/internal/config"
	"avrental-backend/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler(t *testing.T) {
	runner := jobs.NewJobRunner(&jobs.Services{}, nil, nil, config.Default())

	s, err := NewScheduler(runner)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Entries())

	s.Start()
	s.Stop()
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	cfg := config.Default()
	cfg.Scheduler.FleetSnapshot = "not a cron spec"

	_, err := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, nil, nil, cfg))
	assert.Error(t, err)
}
