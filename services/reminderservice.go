package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"reminderapi/model"
)

const RemindersCollection = "Reminders"

var ErrReminderNotFound = errors.New("reminder not found")

func CreateReminder(ctx context.Context, firestoreClient *firestore.Client, reminder *model.Reminder) error {
	_, err := firestoreClient.Collection(RemindersCollection).Doc(reminder.ReminderID).Set(ctx, reminder)
	if err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func GetReminder(ctx context.Context, firestoreClient *firestore.Client, reminderID string) (*model.Reminder, error) {
	doc, err := firestoreClient.Collection(RemindersCollection).Doc(reminderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}

	var reminder model.Reminder
	if err := doc.DataTo(&reminder); err != nil {
		return nil, fmt.Errorf("parse reminder %s: %w", reminderID, err)
	}
	return &reminder, nil
}

func UpdateReminder(ctx context.Context, firestoreClient *firestore.Client, reminder *model.Reminder) error {
	reminder.UpdatedAt = time.Now()
	_, err := firestoreClient.Collection(RemindersCollection).Doc(reminder.ReminderID).Set(ctx, reminder)
	if err != nil {
		return fmt.Errorf("update reminder %s: %w", reminder.ReminderID, err)
	}
	return nil
}

func DeleteReminder(ctx context.Context, firestoreClient *firestore.Client, reminderID string) error {
	if err := PurgeExecutionLogs(ctx, firestoreClient, reminderID); err != nil {
		return err
	}
	_, err := firestoreClient.Collection(RemindersCollection).Doc(reminderID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("delete reminder %s: %w", reminderID, err)
	}
	return nil
}

// ListReminders returns all reminders for owner, newest first.
func ListReminders(ctx context.Context, firestoreClient *firestore.Client, owner string) ([]model.Reminder, error) {
	iter := firestoreClient.Collection(RemindersCollection).
		Where("owner", "==", owner).
		OrderBy("createdat", firestore.Desc).
		Documents(ctx)

	return collectReminders(iter)
}

// DueReminders is the dispatcher's one-shot query: every active reminder
// whose days set contains dayCode. Time-of-day filtering happens in the
// dispatcher, not here.
func DueReminders(ctx context.Context, firestoreClient *firestore.Client, dayCode string) ([]model.Reminder, error) {
	iter := firestoreClient.Collection(RemindersCollection).
		Where("isactive", "==", true).
		Where("days", "array-contains", dayCode).
		Documents(ctx)

	return collectReminders(iter)
}

func collectReminders(iter *firestore.DocumentIterator) ([]model.Reminder, error) {
	var reminders []model.Reminder
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var reminder model.Reminder
		if err := doc.DataTo(&reminder); err != nil {
			return nil, fmt.Errorf("parse reminder %s: %w", doc.Ref.ID, err)
		}
		reminders = append(reminders, reminder)
	}
	return reminders, nil
}

// IncrementExecution bumps the execution counter and last-run time inside a
// transaction. Two slots of the same reminder can fire in the same minute, so
// a blind overwrite would lose increments.
func IncrementExecution(ctx context.Context, firestoreClient *firestore.Client, reminderID string, executedAt time.Time) error {
	ref := firestoreClient.Collection(RemindersCollection).Doc(reminderID)

	return firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return err
		}

		var reminder model.Reminder
		if err := doc.DataTo(&reminder); err != nil {
			return err
		}

		return tx.Update(ref, []firestore.Update{
			{Path: "executioncount", Value: reminder.ExecutionCount + 1},
			{Path: "lastexecutiontime", Value: executedAt},
			{Path: "updatedat", Value: executedAt},
		})
	})
}

// SubscribeReminders registers a snapshot listener for owner's reminders and
// invokes fn with the full result set on every change. The returned func
// releases the listener; callers own it and must call it. The dispatcher
// never uses this — it queries one-shot.
func SubscribeReminders(ctx context.Context, firestoreClient *firestore.Client, owner string, fn func([]model.Reminder)) func() {
	ctx, cancel := context.WithCancel(ctx)

	snaps := firestoreClient.Collection(RemindersCollection).
		Where("owner", "==", owner).
		OrderBy("createdat", firestore.Desc).
		Snapshots(ctx)

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				// Canceled or broken stream; either way the subscription ends.
				return
			}

			docs, err := snap.Documents.GetAll()
			if err != nil {
				continue
			}
			var reminders []model.Reminder
			for _, doc := range docs {
				var reminder model.Reminder
				if err := doc.DataTo(&reminder); err != nil {
					continue
				}
				reminders = append(reminders, reminder)
			}
			fn(reminders)
		}
	}()

	return cancel
}
