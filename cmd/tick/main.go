// Scheduled trigger entry point: run one dispatcher tick and exit. Intended
// for cron-style invocation ("* * * * *"). Individual delivery failures are
// logged, not fatal; only store or adapter resolution problems exit non-zero.
package main

import (
	"context"
	"log"

	"reminderapi/connection"
	"reminderapi/scheduler"
)

func main() {
	fb, err := connection.FBConnection()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer fb.Close()

	dispatcher := scheduler.NewDispatcher(fb)
	if err := dispatcher.RunOnce(context.Background()); err != nil {
		log.Fatalf("Tick failed: %v", err)
	}
}
