package connection

import (
	"log"
	"os"

	controller "reminderapi/controller/reminder"
	"reminderapi/scheduler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartServer() {
	router := gin.Default()

	fb, err := FBConnection()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	router.Use(cors.Default())

	controller.ReminderController(router, fb)
	controller.PlatformController(router, fb)

	// Deployments without an external cron can run the tick loop in-process.
	if os.Getenv("ENABLE_SCHEDULER") == "true" {
		runner, err := scheduler.StartRunner(scheduler.NewDispatcher(fb))
		if err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer func() {
			if err := runner.Shutdown(); err != nil {
				log.Printf("scheduler shutdown: %v", err)
			}
		}()
	}

	router.Run()
}
