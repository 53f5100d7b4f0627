package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"reminderapi/model"
)

const ExecutionLogsCollection = "ExecutionLogs"

// AppendExecutionLog writes one immutable attempt record. Entries are never
// updated afterwards.
func AppendExecutionLog(ctx context.Context, firestoreClient *firestore.Client, entry *model.ExecutionLog) error {
	_, err := firestoreClient.Collection(ExecutionLogsCollection).Doc(entry.LogID).Set(ctx, entry)
	if err != nil {
		return fmt.Errorf("append execution log: %w", err)
	}
	return nil
}

// ExecutionHistory returns a reminder's attempts, newest first.
func ExecutionHistory(ctx context.Context, firestoreClient *firestore.Client, reminderID string, limit int) ([]model.ExecutionLog, error) {
	query := firestoreClient.Collection(ExecutionLogsCollection).
		Where("reminderid", "==", reminderID).
		OrderBy("executedat", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var entries []model.ExecutionLog
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var entry model.ExecutionLog
		if err := doc.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("parse execution log %s: %w", doc.Ref.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// PurgeExecutionLogs removes every log entry for a reminder. Only the
// reminder-deletion cleanup path calls this; nothing else deletes log entries.
func PurgeExecutionLogs(ctx context.Context, firestoreClient *firestore.Client, reminderID string) error {
	iter := firestoreClient.Collection(ExecutionLogsCollection).
		Where("reminderid", "==", reminderID).
		Documents(ctx)

	writer := firestoreClient.BulkWriter(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return err
		}
		if _, err := writer.Delete(doc.Ref); err != nil {
			return err
		}
	}
	writer.End()
	return nil
}
