// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// WorkflowJanitorJob sweeps expired entries out of the in-memory coordination
// stores: pending rejections nobody confirmed or cancelled, and in-flight
// markers left behind by requests that never released them. The redis
// backend expires keys on its own and runs no janitor.
//
// # Usage
//
//	janitor, err := jobs.NewWorkflowJanitorJob("@every 1m", logger,
//	    jobs.NamedPurger{Name: "pending_rejections", Purger: workflowStore},
//	    jobs.NamedPurger{Name: "in_flight_markers", Purger: inFlight},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	jobManager := jobs.NewJobManager(logger, janitor)
//	if err := jobManager.StartAll(); err != nil {
//	    log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A job that fails to start stops the jobs started before it.
package jobs
