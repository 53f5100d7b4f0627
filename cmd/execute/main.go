// Manual trigger CLI: deliver one reminder now, outside its schedule.
//
//	execute -reminder <id> [-slot <id>]
//
// Exit code is zero when the run completes, regardless of delivery outcome —
// failed deliveries are recorded in the execution log, not thrown.
package main

import (
	"context"
	"flag"
	"log"

	"reminderapi/connection"
	"reminderapi/scheduler"
)

func main() {
	reminderID := flag.String("reminder", "", "reminder id to execute")
	slotID := flag.String("slot", "", "optional time slot id (default: all active slots)")
	flag.Parse()

	if *reminderID == "" {
		log.Fatal("Missing required flag: -reminder")
	}

	fb, err := connection.FBConnection()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer fb.Close()

	dispatcher := scheduler.NewDispatcher(fb)
	if err := dispatcher.ExecuteNow(context.Background(), *reminderID, *slotID); err != nil {
		log.Fatalf("Execution failed: %v", err)
	}
}
