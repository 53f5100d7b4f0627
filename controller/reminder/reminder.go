package reminder

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"reminderapi/dto"
	"reminderapi/middleware"
	"reminderapi/model"
	"reminderapi/platform"
	"reminderapi/schedule"
	"reminderapi/services"
)

func ReminderController(router *gin.Engine, firestoreClient *firestore.Client) {
	routes := router.Group("/reminders", middleware.AccessTokenMiddleware())
	{
		routes.POST("", func(c *gin.Context) {
			CreateReminder(c, firestoreClient)
		})
		routes.GET("", func(c *gin.Context) {
			ListReminders(c, firestoreClient)
		})
		routes.GET("/stats", func(c *gin.Context) {
			GetStats(c, firestoreClient)
		})
		routes.GET("/watch", func(c *gin.Context) {
			WatchReminders(c, firestoreClient)
		})
		routes.GET("/:id", func(c *gin.Context) {
			GetReminder(c, firestoreClient)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			UpdateReminder(c, firestoreClient)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteReminder(c, firestoreClient)
		})
		routes.POST("/batch-delete", func(c *gin.Context) {
			BatchDeleteReminders(c, firestoreClient)
		})
		routes.PATCH("/:id/toggle", func(c *gin.Context) {
			ToggleReminder(c, firestoreClient)
		})
		routes.PATCH("/:id/slots/:slotId/toggle", func(c *gin.Context) {
			ToggleTimeSlot(c, firestoreClient)
		})
		routes.POST("/:id/execute", func(c *gin.Context) {
			ExecuteReminder(c, firestoreClient)
		})
		routes.GET("/:id/history", func(c *gin.Context) {
			GetExecutionHistory(c, firestoreClient)
		})
	}
}

// ownedReminder loads a reminder and checks it belongs to the caller. Foreign
// reminders come back as not-found, not forbidden.
func ownedReminder(c *gin.Context, firestoreClient *firestore.Client) (*model.Reminder, bool) {
	userId := c.MustGet("userId").(string)

	reminder, err := services.GetReminder(context.Background(), firestoreClient, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	if reminder.Owner != userId {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		return nil, false
	}
	return reminder, true
}

func buildTimeSlots(requests []dto.TimeSlotRequest) []model.TimeSlot {
	slots := make([]model.TimeSlot, len(requests))
	for i, req := range requests {
		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}
		slots[i] = model.TimeSlot{
			SlotID:      uuid.New().String(),
			Time:        req.Time,
			IsActive:    active,
			Description: req.Description,
		}
	}
	return slots
}

func CreateReminder(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)

	var req dto.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	adapter, err := platform.Get(req.Platform)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !adapter.ValidateURL(req.WebhookURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook URL does not match the selected platform"})
		return
	}

	slots := buildTimeSlots(req.TimeSlots)
	if err := schedule.ValidateConfig(slots, req.Days); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config := adapter.DefaultConfig()
	for key, value := range req.PlatformConfig {
		config[key] = value
	}

	now := time.Now()
	reminder := model.Reminder{
		ReminderID:     uuid.New().String(),
		Owner:          userId,
		Name:           req.Name,
		Platform:       req.Platform,
		WebhookURL:     req.WebhookURL,
		MessageContent: req.MessageContent,
		TimeSlots:      slots,
		Days:           req.Days,
		IsActive:       true,
		PlatformConfig: config,
		CreatedAt:      now,
		UpdatedAt:      now,
		NextRuns:       schedule.NextRuns(slots, req.Days, now),
	}

	if err := services.CreateReminder(context.Background(), firestoreClient, &reminder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reminder"})
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

func ListReminders(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)

	reminders, err := services.ListReminders(context.Background(), firestoreClient, userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reminders == nil {
		reminders = []model.Reminder{}
	}
	c.JSON(http.StatusOK, reminders)
}

func GetReminder(c *gin.Context, firestoreClient *firestore.Client) {
	reminder, ok := ownedReminder(c, firestoreClient)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, reminder)
}

// applyReminderUpdate folds an update request into the reminder. Switching
// platform re-seeds the config with that platform's defaults unless the
// request carries an explicit config. The final platform/URL pair is always
// revalidated: a platform switch must not keep a URL carrying another
// platform's signature.
func applyReminderUpdate(reminder *model.Reminder, req *dto.UpdateReminderRequest) error {
	if req.Name != "" {
		reminder.Name = req.Name
	}
	if req.MessageContent != "" {
		reminder.MessageContent = req.MessageContent
	}

	if req.Platform != "" && req.Platform != reminder.Platform {
		adapter, err := platform.Get(req.Platform)
		if err != nil {
			return err
		}
		reminder.Platform = req.Platform
		reminder.PlatformConfig = adapter.DefaultConfig()
	}
	if req.PlatformConfig != nil {
		reminder.PlatformConfig = req.PlatformConfig
	}
	if req.WebhookURL != "" {
		reminder.WebhookURL = req.WebhookURL
	}

	adapter, err := platform.Get(reminder.Platform)
	if err != nil {
		return err
	}
	if !adapter.ValidateURL(reminder.WebhookURL) {
		return errors.New("webhook URL does not match the selected platform")
	}

	if req.TimeSlots != nil {
		reminder.TimeSlots = buildTimeSlots(req.TimeSlots)
	}
	if req.Days != nil {
		reminder.Days = req.Days
	}
	return schedule.ValidateConfig(reminder.TimeSlots, reminder.Days)
}

func UpdateReminder(c *gin.Context, firestoreClient *firestore.Client) {
	reminder, ok := ownedReminder(c, firestoreClient)
	if !ok {
		return
	}

	var req dto.UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if err := applyReminderUpdate(reminder, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Any edit recomputes the whole nextRuns array; a single change can shift
	// which slot is soonest.
	reminder.NextRuns = schedule.NextRuns(reminder.TimeSlots, reminder.Days, time.Now())

	if err := services.UpdateReminder(context.Background(), firestoreClient, reminder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reminder"})
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func DeleteReminder(c *gin.Context, firestoreClient *firestore.Client) {
	reminder, ok := ownedReminder(c, firestoreClient)
	if !ok {
		return
	}

	if err := services.DeleteReminder(context.Background(), firestoreClient, reminder.ReminderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reminder"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted successfully"})
}

func BatchDeleteReminders(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)

	var req dto.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := context.Background()
	deleted := 0
	for _, id := range req.ReminderIDs {
		reminder, err := services.GetReminder(ctx, firestoreClient, id)
		if err != nil || reminder.Owner != userId {
			continue
		}
		if err := services.DeleteReminder(ctx, firestoreClient, id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reminder " + id})
			return
		}
		deleted++
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminders deleted", "deleted": deleted})
}

func ToggleReminder(c *gin.Context, firestoreClient *firestore.Client) {
	reminder, ok := ownedReminder(c, firestoreClient)
	if !ok {
		return
	}

	reminder.IsActive = !reminder.IsActive
	reminder.NextRuns = schedule.NextRuns(reminder.TimeSlots, reminder.Days, time.Now())

	if err := services.UpdateReminder(context.Background(), firestoreClient, reminder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reminder"})
		return
	}
	c.JSON(http.StatusOK, reminder)
}

func ToggleTimeSlot(c *gin.Context, firestoreClient *firestore.Client) {
	reminder, ok := ownedReminder(c, firestoreClient)
	if !ok {
		return
	}

	slot, _ := reminder.Slot(c.Param("slotId"))
	if slot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Time slot not found"})
		return
	}

	slot.IsActive = !slot.IsActive
	reminder.NextRuns = schedule.NextRuns(reminder.TimeSlots, reminder.Days, time.Now())

	if err := services.UpdateReminder(context.Background(), firestoreClient, reminder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reminder"})
		return
	}
	c.JSON(http.StatusOK, reminder)
}
