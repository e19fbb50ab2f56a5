package handler

import (
	"CloudVault/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListMyActivity returns the caller's recent actions.
func ListMyActivity(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := service.ListUserActivity(userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": entries})
}

// ListResourceActivity returns one resource's audit trail to anyone who can
// view the resource.
func ListResourceActivity(c *gin.Context) {
	resourceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	resourceType := c.Param("type")
	userID := c.MustGet("user_id").(uint64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := service.ListResourceActivity(userID, resourceType, resourceID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": entries})
}
