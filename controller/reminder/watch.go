package reminder

import (
	"io"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"reminderapi/model"
	"reminderapi/services"
)

// WatchReminders streams the caller's reminder list as server-sent events,
// one event per store change. The snapshot listener is released when the
// client disconnects.
func WatchReminders(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)

	updates := make(chan []model.Reminder, 1)
	unsubscribe := services.SubscribeReminders(c.Request.Context(), firestoreClient, userId, func(reminders []model.Reminder) {
		// Keep only the latest snapshot; a slow client skips intermediate
		// states instead of backing up the listener.
		select {
		case updates <- reminders:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- reminders
		}
	})
	defer unsubscribe()

	c.Stream(func(w io.Writer) bool {
		select {
		case reminders := <-updates:
			c.SSEvent("reminders", reminders)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
