package services

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"reminderapi/dto"
	"reminderapi/model"
	"reminderapi/schedule"
)

// ReminderStats derives the dashboard numbers for one owner. A read that is
// stale by one tick is acceptable; nothing here needs to be transactional.
func ReminderStats(ctx context.Context, firestoreClient *firestore.Client, owner string, now time.Time) (*dto.StatsResponse, error) {
	reminders, err := ListReminders(ctx, firestoreClient, owner)
	if err != nil {
		return nil, err
	}

	stats := &dto.StatsResponse{Total: len(reminders)}
	var next time.Time
	for _, reminder := range reminders {
		if reminder.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.TotalExecutions += reminder.ExecutionCount

		if !reminder.IsActive {
			continue
		}
		for i, run := range reminder.NextRuns {
			if i >= len(reminder.TimeSlots) || !reminder.TimeSlots[i].IsActive {
				continue
			}
			if run.Equal(schedule.Sentinel) || !run.After(now) {
				continue
			}
			if next.IsZero() || run.Before(next) {
				next = run
			}
		}
	}
	if !next.IsZero() {
		stats.NextExecution = next.Format(time.RFC3339)
	}

	todayCount, err := countTodaySuccesses(ctx, firestoreClient, reminders, now)
	if err != nil {
		return nil, err
	}
	stats.TodayExecutions = todayCount

	return stats, nil
}

// countTodaySuccesses counts success log entries executed on now's calendar
// day, restricted to the owner's reminders.
func countTodaySuccesses(ctx context.Context, firestoreClient *firestore.Client, reminders []model.Reminder, now time.Time) (int, error) {
	if len(reminders) == 0 {
		return 0, nil
	}

	owned := make(map[string]bool, len(reminders))
	for _, reminder := range reminders {
		owned[reminder.ReminderID] = true
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	iter := firestoreClient.Collection(ExecutionLogsCollection).
		Where("status", "==", model.ExecutionSuccess).
		Where("executedat", ">=", dayStart).
		Where("executedat", "<", dayStart.AddDate(0, 0, 1)).
		Documents(ctx)

	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, err
		}

		var entry model.ExecutionLog
		if err := doc.DataTo(&entry); err != nil {
			continue
		}
		if owned[entry.ReminderID] {
			count++
		}
	}
	return count, nil
}
