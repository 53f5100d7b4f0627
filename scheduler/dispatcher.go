package scheduler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"reminderapi/model"
	"reminderapi/platform"
	"reminderapi/services"
)

const userAgent = "reminderapi-webhook/1.0"

var (
	ErrTimeSlotNotFound = errors.New("time slot not found")
	ErrTimeSlotInactive = errors.New("time slot is inactive")
)

// Dispatcher runs one scan-and-deliver pass per invocation. It owns no timer:
// RunOnce is driven by cron, a serverless trigger, or the in-process runner.
type Dispatcher struct {
	firestoreClient *firestore.Client
	httpClient      *http.Client
	now             func() time.Time
	appendLog       func(ctx context.Context, entry *model.ExecutionLog) error
	increment       func(ctx context.Context, reminderID string, executedAt time.Time) error
}

func NewDispatcher(firestoreClient *firestore.Client) *Dispatcher {
	return &Dispatcher{
		firestoreClient: firestoreClient,
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		now:             time.Now,
		appendLog: func(ctx context.Context, entry *model.ExecutionLog) error {
			return services.AppendExecutionLog(ctx, firestoreClient, entry)
		},
		increment: func(ctx context.Context, reminderID string, executedAt time.Time) error {
			return services.IncrementExecution(ctx, firestoreClient, reminderID, executedAt)
		},
	}
}

// RunOnce scans for reminders due at the current wall-clock minute and
// delivers them. Per-slot failures are logged and isolated; only store
// connectivity problems (or a platform that genuinely has no adapter) abort
// the tick.
func (d *Dispatcher) RunOnce(ctx context.Context) error {
	now := d.now()
	currentTime := now.Format("15:04")
	currentDay := strconv.Itoa(int(now.Weekday()))

	reminders, err := services.DueReminders(ctx, d.firestoreClient, currentDay)
	if err != nil {
		return fmt.Errorf("query due reminders: %w", err)
	}

	delivered := 0
	for i := range reminders {
		reminder := &reminders[i]
		for _, slot := range matchSlots(reminder.TimeSlots, currentTime) {
			if err := d.deliver(ctx, reminder, slot); err != nil {
				return err
			}
			delivered++
		}
	}

	log.Printf("tick %s day=%s: %d reminder(s) scanned, %d slot(s) dispatched", currentTime, currentDay, len(reminders), delivered)
	return nil
}

// matchSlots selects the active slots due at currentTime. Exact string match,
// no tolerance window: a tick cadence coarser than one minute skips slots.
func matchSlots(slots []model.TimeSlot, currentTime string) []model.TimeSlot {
	var due []model.TimeSlot
	for _, slot := range slots {
		if slot.IsActive && slot.Time == currentTime {
			due = append(due, slot)
		}
	}
	return due
}

// ExecuteNow delivers one reminder immediately, skipping the time and day
// filters. With an empty slotID every active slot fires. Logging and counter
// updates are identical to a scheduled run.
func (d *Dispatcher) ExecuteNow(ctx context.Context, reminderID, slotID string) error {
	reminder, err := services.GetReminder(ctx, d.firestoreClient, reminderID)
	if err != nil {
		return err
	}

	slots, err := executionSlots(reminder, slotID)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if err := d.deliver(ctx, reminder, slot); err != nil {
			return err
		}
	}
	return nil
}

// executionSlots selects the slots a manual run delivers. Inactive slots
// never fire, even when named explicitly — a disabled slot stays disabled in
// every execution path.
func executionSlots(reminder *model.Reminder, slotID string) ([]model.TimeSlot, error) {
	if slotID != "" {
		slot, _ := reminder.Slot(slotID)
		if slot == nil {
			return nil, fmt.Errorf("%w: %s", ErrTimeSlotNotFound, slotID)
		}
		if !slot.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrTimeSlotInactive, slotID)
		}
		return []model.TimeSlot{*slot}, nil
	}

	var slots []model.TimeSlot
	for _, slot := range reminder.TimeSlots {
		if slot.IsActive {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// deliver formats and posts one slot's message, then records the attempt.
// The returned error is non-nil only for adapter resolution failure; delivery
// problems end up in the execution log, not the caller.
func (d *Dispatcher) deliver(ctx context.Context, reminder *model.Reminder, slot model.TimeSlot) error {
	adapter, err := platform.Get(reminder.Platform)
	if err != nil {
		return err
	}

	// Slot description, when present, goes on its own line above the content.
	content := reminder.MessageContent
	if slot.Description != "" {
		content = slot.Description + "\n" + content
	}

	executedAt := d.now()
	body, err := adapter.FormatMessage(content, reminder.PlatformConfig)
	if err != nil {
		d.recordFailure(ctx, reminder, slot, executedAt, err.Error(), 0)
		return nil
	}

	status, err := d.post(ctx, reminder, body)
	if err != nil {
		d.recordFailure(ctx, reminder, slot, executedAt, err.Error(), status)
		return nil
	}

	entry := &model.ExecutionLog{
		LogID:          uuid.New().String(),
		ReminderID:     reminder.ReminderID,
		TimeSlotID:     slot.SlotID,
		Status:         model.ExecutionSuccess,
		ExecutedAt:     executedAt,
		ResponseStatus: status,
	}
	if err := d.appendLog(ctx, entry); err != nil {
		log.Printf("failed to write success log for %s/%s: %v", reminder.ReminderID, slot.SlotID, err)
	}
	if err := d.increment(ctx, reminder.ReminderID, executedAt); err != nil {
		log.Printf("failed to bump execution count for %s: %v", reminder.ReminderID, err)
	}
	return nil
}

// post sends the webhook request. A non-2xx status is reported as an error so
// the caller records a failed attempt; the status code rides along either way.
func (d *Dispatcher) post(ctx context.Context, reminder *model.Reminder, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reminder.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	platform.ApplyCustomHeaders(req, reminder.Platform, reminder.PlatformConfig)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}

func (d *Dispatcher) recordFailure(ctx context.Context, reminder *model.Reminder, slot model.TimeSlot, executedAt time.Time, message string, status int) {
	entry := &model.ExecutionLog{
		LogID:          uuid.New().String(),
		ReminderID:     reminder.ReminderID,
		TimeSlotID:     slot.SlotID,
		Status:         model.ExecutionFailed,
		ExecutedAt:     executedAt,
		ErrorMessage:   message,
		ResponseStatus: status,
	}
	if err := d.appendLog(ctx, entry); err != nil {
		log.Printf("failed to write failure log for %s/%s: %v", reminder.ReminderID, slot.SlotID, err)
	}
	log.Printf("delivery failed for %s/%s: %s", reminder.ReminderID, slot.SlotID, message)
}
