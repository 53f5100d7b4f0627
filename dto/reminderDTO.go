package dto

type TimeSlotRequest struct {
	Time        string `json:"time" binding:"required"`
	IsActive    *bool  `json:"isActive"`
	Description string `json:"description"`
}

type CreateReminderRequest struct {
	Name           string            `json:"name" binding:"required"`
	Platform       string            `json:"platform" binding:"required"`
	WebhookURL     string            `json:"webhookUrl" binding:"required"`
	MessageContent string            `json:"messageContent" binding:"required"`
	TimeSlots      []TimeSlotRequest `json:"timeSlots" binding:"required,min=1,max=3"`
	Days           []string          `json:"days" binding:"required"`
	PlatformConfig map[string]string `json:"platformConfig"`
}

type UpdateReminderRequest struct {
	Name           string            `json:"name"`
	Platform       string            `json:"platform"`
	WebhookURL     string            `json:"webhookUrl"`
	MessageContent string            `json:"messageContent"`
	TimeSlots      []TimeSlotRequest `json:"timeSlots" binding:"omitempty,min=1,max=3"`
	Days           []string          `json:"days"`
	PlatformConfig map[string]string `json:"platformConfig"`
}

type BatchDeleteRequest struct {
	ReminderIDs []string `json:"reminderIds" binding:"required,min=1"`
}

type ExecuteNowRequest struct {
	TimeSlotID string `json:"timeSlotId"`
}

type StatsResponse struct {
	Total           int    `json:"total"`
	Active          int    `json:"active"`
	Inactive        int    `json:"inactive"`
	TotalExecutions int64  `json:"totalExecutions"`
	TodayExecutions int    `json:"todayExecutions"`
	NextExecution   string `json:"nextExecution,omitempty"` // RFC3339, empty when nothing upcoming
}
