package jobs

import (
	"errors"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Purger drops expired entries and reports how many it removed.
type Purger interface {
	Purge() int
}

// NamedPurger labels a Purger in the janitor's log output.
type NamedPurger struct {
	Name   string
	Purger Purger
}

// WorkflowJanitorJob periodically purges expired coordination entries.
type WorkflowJanitorJob struct {
	schedule string
	purgers  []NamedPurger
	cron     *cron.Cron
	logger   zerolog.Logger
}

// NewWorkflowJanitorJob validates the cron schedule (standard five fields or
// a descriptor such as "@every 1m") and returns a stopped job.
func NewWorkflowJanitorJob(schedule string, logger zerolog.Logger, purgers ...NamedPurger) (*WorkflowJanitorJob, error) {
	if len(purgers) == 0 {
		return nil, errors.New("workflow janitor needs at least one purger")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, err
	}

	return &WorkflowJanitorJob{
		schedule: schedule,
		purgers:  purgers,
		cron:     cron.New(),
		logger:   logger.With().Str("component", "workflow_janitor_job").Logger(),
	}, nil
}

func (j *WorkflowJanitorJob) Name() string {
	return "workflow janitor"
}

// Start schedules the sweep.
func (j *WorkflowJanitorJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce() }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info().Str("schedule", j.schedule).Msg("Workflow janitor job started")
	return nil
}

// RunOnce sweeps every store and returns the number of entries removed.
func (j *WorkflowJanitorJob) RunOnce() int {
	total := 0
	for _, p := range j.purgers {
		removed := p.Purger.Purge()
		total += removed
		if removed > 0 {
			j.logger.Debug().Str("store", p.Name).Int("removed", removed).Msg("purged expired entries")
		}
	}
	return total
}

// Stop waits for a running sweep to finish.
func (j *WorkflowJanitorJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info().Msg("Workflow janitor job stopped")
}
