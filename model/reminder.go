package model

import (
	"time"
)

// Platform identifiers. Closed set — the registry rejects anything else.
const (
	PlatformWechatWork = "wechat_work"
	PlatformDingtalk   = "dingtalk"
	PlatformFeishu     = "feishu"
	PlatformSlack      = "slack"
	PlatformCustom     = "custom"
)

// TimeSlot is one independently toggleable daily trigger within a reminder.
type TimeSlot struct {
	SlotID      string `firestore:"slotid" json:"slotId"`
	Time        string `firestore:"time" json:"time"` // "HH:MM", 24h, server-local
	IsActive    bool   `firestore:"isactive" json:"isActive"`
	Description string `firestore:"description,omitempty" json:"description,omitempty"`
}

type Reminder struct {
	ReminderID        string            `firestore:"reminderid" json:"reminderId"`
	Owner             string            `firestore:"owner" json:"owner"`
	Name              string            `firestore:"name" json:"name"`
	Platform          string            `firestore:"platform" json:"platform"`
	WebhookURL        string            `firestore:"webhookurl" json:"webhookUrl"`
	MessageContent    string            `firestore:"messagecontent" json:"messageContent"`
	TimeSlots         []TimeSlot        `firestore:"timeslots" json:"timeSlots"`
	Days              []string          `firestore:"days" json:"days"` // weekday codes "0".."6", 0=Sunday
	IsActive          bool              `firestore:"isactive" json:"isActive"`
	PlatformConfig    map[string]string `firestore:"platformconfig,omitempty" json:"platformConfig,omitempty"`
	ExecutionCount    int64             `firestore:"executioncount" json:"executionCount"`
	LastExecutionTime *time.Time        `firestore:"lastexecutiontime,omitempty" json:"lastExecutionTime,omitempty"`
	CreatedAt         time.Time         `firestore:"createdat" json:"createdAt"`
	UpdatedAt         time.Time         `firestore:"updatedat" json:"updatedAt"`
	// NextRuns is index-aligned with TimeSlots. Inactive slots hold the
	// epoch-zero sentinel, never a real future time.
	NextRuns []time.Time `firestore:"nextruns" json:"nextRuns"`
}

// Slot returns the slot with the given id and its index, or nil.
func (r *Reminder) Slot(slotID string) (*TimeSlot, int) {
	for i := range r.TimeSlots {
		if r.TimeSlots[i].SlotID == slotID {
			return &r.TimeSlots[i], i
		}
	}
	return nil, -1
}
