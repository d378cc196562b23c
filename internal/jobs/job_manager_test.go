package jobs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/jobs"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j recordingJob) Name() string { return j.name }

func (j recordingJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.log = append(*j.log, "start "+j.name)
	return nil
}

func (j recordingJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("should start in order and stop in reverse", func(t *testing.T) {
		var log []string
		jm := jobs.NewJobManager(zerolog.Nop(),
			recordingJob{name: "a", log: &log},
			recordingJob{name: "b", log: &log},
		)

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("should stop started jobs when one fails to start", func(t *testing.T) {
		var log []string
		jm := jobs.NewJobManager(zerolog.Nop(),
			recordingJob{name: "a", log: &log},
			recordingJob{name: "b", log: &log, startErr: errors.New("bad schedule")},
		)

		err := jm.StartAll()

		require.ErrorContains(t, err, "failed to start b job")
		assert.Equal(t, []string{"start a", "stop a"}, log)
	})

	t.Run("should accept no jobs", func(t *testing.T) {
		jm := jobs.NewJobManager(zerolog.Nop())

		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})
}
