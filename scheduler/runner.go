package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartRunner drives the dispatcher with an in-process one-minute job, for
// deployments without an external cron. The returned scheduler must be
// shut down by the caller.
func StartRunner(dispatcher *Dispatcher) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if err := dispatcher.RunOnce(context.Background()); err != nil {
				log.Printf("tick failed: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	log.Println("in-process scheduler started (1m interval)")
	return s, nil
}
