package reminder

import (
	"context"
	"errors"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"reminderapi/dto"
	"reminderapi/middleware"
	"reminderapi/platform"
)

// PlatformController exposes the adapter registry to the editing UI:
// listing, URL auto-detection, message preview and the connection test.
func PlatformController(router *gin.Engine, firestoreClient *firestore.Client) {
	routes := router.Group("/platforms", middleware.AccessTokenMiddleware())
	{
		routes.GET("", ListPlatforms)
		routes.GET("/detect", DetectPlatform)
		routes.POST("/preview", PreviewMessage)
		routes.POST("/test", TestPlatformConnection)
	}
}

func ListPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"platforms": platform.SupportedPlatforms()})
}

func DetectPlatform(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url parameter"})
		return
	}

	// No signature match means the user must pick a platform explicitly;
	// custom is never guessed.
	detected := platform.DetectPlatform(url)
	c.JSON(http.StatusOK, gin.H{"platform": detected, "detected": detected != ""})
}

func PreviewMessage(c *gin.Context) {
	var req dto.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	adapter, err := platform.Get(req.Platform)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preview": adapter.MessagePreview(req.Content, req.Config)})
}

func TestPlatformConnection(c *gin.Context) {
	var req dto.TestConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	result, err := platform.TestConnection(context.Background(), req.Platform, req.URL, req.Config)
	if err != nil {
		if errors.Is(err, platform.ErrUnsupportedPlatform) || errors.Is(err, platform.ErrBadTemplate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
