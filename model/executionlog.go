package model

import (
	"time"
)

const (
	ExecutionSuccess = "success"
	ExecutionFailed  = "failed"
)

// ExecutionLog is one delivery attempt. Entries are written once and never
// updated; they are only bulk-purged when the owning reminder is deleted.
type ExecutionLog struct {
	LogID          string    `firestore:"logid" json:"logId"`
	ReminderID     string    `firestore:"reminderid" json:"reminderId"`
	TimeSlotID     string    `firestore:"timeslotid" json:"timeSlotId"`
	Status         string    `firestore:"status" json:"status"` // "success" | "failed"
	ExecutedAt     time.Time `firestore:"executedat" json:"executedAt"`
	ErrorMessage   string    `firestore:"errormessage,omitempty" json:"errorMessage,omitempty"`
	ResponseStatus int       `firestore:"responsestatus,omitempty" json:"responseStatus,omitempty"`
}
