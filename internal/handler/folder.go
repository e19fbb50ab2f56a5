package handler

import (
	"CloudVault/internal/dto"
	"CloudVault/internal/service"
	"CloudVault/model"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// CreateFolder creates a folder for the authenticated user.
func CreateFolder(c *gin.Context) {
	var req dto.CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(uint64)
	folder, err := service.CreateFolder(userID, req.Name, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"folder": folder})
}

// ListFolders lists the user's own folders.
func ListFolders(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	folders, err := service.ListFolders(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

// FolderContents lists sub-folders and files; VIEWER is enough.
func FolderContents(c *gin.Context) {
	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RequireAccess(userID, model.ResourceFolder, folderID, model.RoleViewer); err != nil {
		respondError(c, err)
		return
	}
	folders, files, err := service.FolderContents(folderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"folders": folders,
		"files":   files,
	})
}

// FolderBreadcrumbs returns the ancestor chain root-first.
func FolderBreadcrumbs(c *gin.Context) {
	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RequireAccess(userID, model.ResourceFolder, folderID, model.RoleViewer); err != nil {
		respondError(c, err)
		return
	}
	chain, err := service.Breadcrumbs(folderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"breadcrumbs": chain})
}

// RenameFolder renames an owned folder.
func RenameFolder(c *gin.Context) {
	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RenameFolder(userID, folderID, req.NewName); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// MoveFolder re-parents an owned folder.
func MoveFolder(c *gin.Context) {
	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.MoveFolder(userID, folderID, req.TargetFolderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}
