package scheduler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reminderapi/model"
)

// testDispatcher captures log writes and counter bumps instead of touching
// the store.
func testDispatcher(logs *[]model.ExecutionLog, increments *[]string) *Dispatcher {
	return &Dispatcher{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		now:        time.Now,
		appendLog: func(ctx context.Context, entry *model.ExecutionLog) error {
			*logs = append(*logs, *entry)
			return nil
		},
		increment: func(ctx context.Context, reminderID string, executedAt time.Time) error {
			*increments = append(*increments, reminderID)
			return nil
		},
	}
}

func TestMatchSlots_ExactMinuteOnly(t *testing.T) {
	slots := []model.TimeSlot{
		{SlotID: "s1", Time: "09:00", IsActive: true},
	}

	if due := matchSlots(slots, "09:00"); len(due) != 1 {
		t.Errorf("expected 09:00 to match, got %d slots", len(due))
	}
	if due := matchSlots(slots, "08:59"); len(due) != 0 {
		t.Errorf("08:59 must not match, got %d slots", len(due))
	}
	if due := matchSlots(slots, "09:01"); len(due) != 0 {
		t.Errorf("09:01 must not match, got %d slots", len(due))
	}
}

func TestMatchSlots_InactiveSlotNeverDue(t *testing.T) {
	slots := []model.TimeSlot{
		{SlotID: "s1", Time: "09:00", IsActive: false},
	}

	if due := matchSlots(slots, "09:00"); len(due) != 0 {
		t.Errorf("inactive slot matched, got %d slots", len(due))
	}
}

func TestMatchSlots_MultipleSlotsSameMinute(t *testing.T) {
	slots := []model.TimeSlot{
		{SlotID: "s1", Time: "12:30", IsActive: true},
		{SlotID: "s2", Time: "12:30", IsActive: true},
		{SlotID: "s3", Time: "18:00", IsActive: true},
	}

	due := matchSlots(slots, "12:30")
	if len(due) != 2 {
		t.Fatalf("expected 2 due slots, got %d", len(due))
	}
	if due[0].SlotID != "s1" || due[1].SlotID != "s2" {
		t.Errorf("unexpected due slots: %v", due)
	}
}

func TestDeliver_FailureIsolatedFromSiblingSuccess(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	succeeding := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer succeeding.Close()

	var logs []model.ExecutionLog
	var increments []string
	d := testDispatcher(&logs, &increments)

	broken := &model.Reminder{
		ReminderID: "r-broken", Platform: model.PlatformSlack,
		WebhookURL: failing.URL, MessageContent: "ping",
	}
	healthy := &model.Reminder{
		ReminderID: "r-healthy", Platform: model.PlatformSlack,
		WebhookURL: succeeding.URL, MessageContent: "ping",
	}

	if err := d.deliver(context.Background(), broken, model.TimeSlot{SlotID: "s1", IsActive: true}); err != nil {
		t.Fatalf("failed delivery must not surface an error: %v", err)
	}
	if err := d.deliver(context.Background(), healthy, model.TimeSlot{SlotID: "s2", IsActive: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(logs) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(logs))
	}
	if logs[0].Status != model.ExecutionFailed || logs[0].ReminderID != "r-broken" {
		t.Errorf("expected failed entry for r-broken, got %+v", logs[0])
	}
	if logs[0].ResponseStatus != http.StatusInternalServerError {
		t.Errorf("expected captured status 500, got %d", logs[0].ResponseStatus)
	}
	if logs[1].Status != model.ExecutionSuccess || logs[1].ReminderID != "r-healthy" {
		t.Errorf("expected success entry for r-healthy, got %+v", logs[1])
	}

	// Only the successful delivery bumps a counter.
	if len(increments) != 1 || increments[0] != "r-healthy" {
		t.Errorf("expected exactly one increment for r-healthy, got %v", increments)
	}
}

func TestDeliver_FormatErrorLogsFailureWithoutIncrement(t *testing.T) {
	var logs []model.ExecutionLog
	var increments []string
	d := testDispatcher(&logs, &increments)

	reminder := &model.Reminder{
		ReminderID: "r1", Platform: model.PlatformCustom,
		WebhookURL:     "http://example.com/hook",
		MessageContent: "ping",
		PlatformConfig: map[string]string{"bodyTemplate": `{"msg": "static"}`},
	}

	if err := d.deliver(context.Background(), reminder, model.TimeSlot{SlotID: "s1", IsActive: true}); err != nil {
		t.Fatalf("template errors must be logged, not returned: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != model.ExecutionFailed {
		t.Fatalf("expected one failed entry, got %v", logs)
	}
	if len(increments) != 0 {
		t.Errorf("expected no increment, got %v", increments)
	}
}

func TestExecutionSlots_ExplicitInactiveSlotRejected(t *testing.T) {
	reminder := &model.Reminder{
		TimeSlots: []model.TimeSlot{
			{SlotID: "on", Time: "09:00", IsActive: true},
			{SlotID: "off", Time: "18:00", IsActive: false},
		},
	}

	if _, err := executionSlots(reminder, "off"); !errors.Is(err, ErrTimeSlotInactive) {
		t.Errorf("expected ErrTimeSlotInactive, got %v", err)
	}

	slots, err := executionSlots(reminder, "on")
	if err != nil || len(slots) != 1 || slots[0].SlotID != "on" {
		t.Errorf("expected the named active slot, got %v (%v)", slots, err)
	}

	if _, err := executionSlots(reminder, "missing"); !errors.Is(err, ErrTimeSlotNotFound) {
		t.Errorf("expected ErrTimeSlotNotFound, got %v", err)
	}
}

func TestExecutionSlots_DefaultSkipsInactive(t *testing.T) {
	reminder := &model.Reminder{
		TimeSlots: []model.TimeSlot{
			{SlotID: "a", IsActive: true},
			{SlotID: "b", IsActive: false},
			{SlotID: "c", IsActive: true},
		},
	}

	slots, err := executionSlots(reminder, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 || slots[0].SlotID != "a" || slots[1].SlotID != "c" {
		t.Errorf("expected active slots a and c, got %v", slots)
	}
}

func TestPost_SetsHeadersAndAcceptsOK(t *testing.T) {
	var gotContentType, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d := &Dispatcher{httpClient: &http.Client{Timeout: 5 * time.Second}, now: time.Now}
	reminder := &model.Reminder{Platform: model.PlatformSlack, WebhookURL: server.URL}

	status, err := d.post(context.Background(), reminder, []byte(`{"text":"hi"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json, got %q", gotContentType)
	}
	if gotUserAgent != userAgent {
		t.Errorf("expected User-Agent %q, got %q", userAgent, gotUserAgent)
	}
}

func TestPost_Non2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	d := &Dispatcher{httpClient: &http.Client{Timeout: 5 * time.Second}, now: time.Now}
	reminder := &model.Reminder{Platform: model.PlatformSlack, WebhookURL: server.URL}

	status, err := d.post(context.Background(), reminder, []byte(`{}`))
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if status != http.StatusInternalServerError {
		t.Errorf("expected captured status 500, got %d", status)
	}
}

func TestPost_CustomHeadersOnlyForCustomPlatform(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d := &Dispatcher{httpClient: &http.Client{Timeout: 5 * time.Second}, now: time.Now}

	custom := &model.Reminder{
		Platform:   model.PlatformCustom,
		WebhookURL: server.URL,
		PlatformConfig: map[string]string{
			"bodyTemplate":         `{"text": "{{message}}"}`,
			"header.Authorization": "Bearer secret",
		},
	}
	if _, err := d.post(context.Background(), custom, []byte(`{}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected custom header on custom platform, got %q", gotAuth)
	}

	slack := &model.Reminder{
		Platform:       model.PlatformSlack,
		WebhookURL:     server.URL,
		PlatformConfig: map[string]string{"header.Authorization": "Bearer secret"},
	}
	if _, err := d.post(context.Background(), slack, []byte(`{}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("custom headers must not leak to non-custom platforms, got %q", gotAuth)
	}
}

func TestPost_TimeoutIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	d := &Dispatcher{httpClient: &http.Client{Timeout: 50 * time.Millisecond}, now: time.Now}
	reminder := &model.Reminder{Platform: model.PlatformSlack, WebhookURL: server.URL}

	if _, err := d.post(context.Background(), reminder, []byte(`{}`)); err == nil {
		t.Fatal("expected timeout error")
	}
}
