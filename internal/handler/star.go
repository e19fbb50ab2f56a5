package handler

import (
	"CloudVault/internal/dto"
	"CloudVault/internal/service"
	"CloudVault/model"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// StarResource marks a file or folder as a favorite.
func StarResource(c *gin.Context) {
	var req dto.StarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RequireAccess(userID, req.ResourceType, req.ResourceID, model.RoleViewer); err != nil {
		respondError(c, err)
		return
	}
	if err := service.StarResource(userID, req.ResourceType, req.ResourceID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// UnstarResource removes a favorite.
func UnstarResource(c *gin.Context) {
	resourceType := c.Param("type")
	resourceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resourceID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.UnstarResource(userID, resourceType, resourceID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// ListStarred lists the caller's starred live items.
func ListStarred(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	files, folders, err := service.ListStarred(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"files":   files,
		"folders": folders,
	})
}
