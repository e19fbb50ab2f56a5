package handler

import (
	"CloudVault/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListTrash shows the user's trashed files and folders.
func ListTrash(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	files, folders, err := service.ListTrash(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"files":   files,
		"folders": folders,
	})
}

// TrashFile soft-deletes an owned file.
func TrashFile(c *gin.Context) {
	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.TrashFile(userID, fileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// TrashFolder soft-deletes an owned folder and its subtree.
func TrashFolder(c *gin.Context) {
	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.TrashFolder(userID, folderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// RestoreFile brings a trashed file back.
func RestoreFile(c *gin.Context) {
	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RestoreFile(userID, fileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// RestoreFolder brings a trashed folder back, without its descendants.
func RestoreFolder(c *gin.Context) {
	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RestoreFolder(userID, folderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// PurgeFile permanently deletes a trashed file and its versions.
func PurgeFile(c *gin.Context) {
	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.PurgeFile(c.Request.Context(), userID, fileID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// PurgeFolder permanently deletes a trashed folder subtree.
func PurgeFolder(c *gin.Context) {
	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.PurgeFolder(c.Request.Context(), userID, folderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// EmptyTrash purges everything in the user's trash.
func EmptyTrash(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	if err := service.EmptyTrash(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}
