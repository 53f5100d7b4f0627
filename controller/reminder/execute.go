package reminder

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"reminderapi/dto"
	"reminderapi/model"
	"reminderapi/scheduler"
	"reminderapi/services"
)

// ExecuteReminder fires a reminder immediately, outside its schedule. The
// attempt is logged and counted exactly like a scheduled run.
func ExecuteReminder(c *gin.Context, firestoreClient *firestore.Client) {
	reminder, ok := ownedReminder(c, firestoreClient)
	if !ok {
		return
	}

	var req dto.ExecuteNowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
	}

	dispatcher := scheduler.NewDispatcher(firestoreClient)
	if err := dispatcher.ExecuteNow(context.Background(), reminder.ReminderID, req.TimeSlotID); err != nil {
		if errors.Is(err, scheduler.ErrTimeSlotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Time slot not found"})
			return
		}
		if errors.Is(err, scheduler.ErrTimeSlotInactive) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Time slot is inactive"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Execution triggered"})
}

func GetExecutionHistory(c *gin.Context, firestoreClient *firestore.Client) {
	reminder, ok := ownedReminder(c, firestoreClient)
	if !ok {
		return
	}

	entries, err := services.ExecutionHistory(context.Background(), firestoreClient, reminder.ReminderID, 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []model.ExecutionLog{}
	}
	c.JSON(http.StatusOK, entries)
}

func GetStats(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)

	stats, err := services.ReminderStats(context.Background(), firestoreClient, userId, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
