package handler

import (
	"CloudVault/config"
	"CloudVault/internal/dto"
	"CloudVault/internal/service"
	"CloudVault/internal/storage"
	"CloudVault/model"
	"CloudVault/utils"
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// UploadFile stores multipart content as a new file or a new version.
// Uploading into a folder needs EDITOR there.
func UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	userID := c.MustGet("user_id").(uint64)

	var folderID *uint64
	if raw := c.PostForm("folder_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid folder_id"})
			return
		}
		folderID = &id
		if err := service.RequireAccess(userID, model.ResourceFolder, id, model.RoleEditor); err != nil {
			respondError(c, err)
			return
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "open upload failed: " + err.Error()})
		return
	}
	defer src.Close()

	name := fileHeader.Filename
	mimeType := fileHeader.Header.Get("Content-Type")

	result, err := service.UploadFile(c.Request.Context(), userID, folderID,
		name, mimeType, src, fileHeader.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg":     "success",
		"file_id": result.FileID,
		"version": result.Version,
	})
}

// DownloadFile answers with a presigned URL for the current version.
func DownloadFile(c *gin.Context) {
	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RequireAccess(userID, model.ResourceFile, fileID, model.RoleViewer); err != nil {
		respondError(c, err)
		return
	}
	url, err := service.DownloadURL(c.Request.Context(), fileID)
	if err != nil {
		respondError(c, err)
		return
	}
	service.LogActivity(userID, model.ActionDownload, model.ResourceFile, fileID, nil)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// PreviewFile answers with a presigned URL that renders inline.
func PreviewFile(c *gin.Context) {
	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RequireAccess(userID, model.ResourceFile, fileID, model.RoleViewer); err != nil {
		respondError(c, err)
		return
	}
	url, err := service.PreviewURL(c.Request.Context(), fileID, 15*time.Minute)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ListVersions returns a file's version history.
func ListVersions(c *gin.Context) {
	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RequireAccess(userID, model.ResourceFile, fileID, model.RoleViewer); err != nil {
		respondError(c, err)
		return
	}
	versions, err := service.ListVersions(fileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

// RollbackFile promotes an old version to the newest one.
func RollbackFile(c *gin.Context) {
	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RollbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RequireAccess(userID, model.ResourceFile, fileID, model.RoleEditor); err != nil {
		respondError(c, err)
		return
	}
	result, err := service.RollbackFile(c.Request.Context(), userID, fileID, req.VersionNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg":     "success",
		"version": result.Version,
	})
}

// RenameFile renames an owned file.
func RenameFile(c *gin.Context) {
	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RenameFile(userID, fileID, req.NewName); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// MoveFile moves an owned file to another folder.
func MoveFile(c *gin.Context) {
	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.MoveFile(userID, fileID, req.TargetFolderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// Search matches the user's own files and folders by name.
func Search(c *gin.Context) {
	query := c.Query("q")
	userID := c.MustGet("user_id").(uint64)
	files, folders, err := service.SearchFiles(userID, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"files":   files,
		"folders": folders,
	})
}

// DownloadFolderArchive streams a folder's live subtree as a zip.
func DownloadFolderArchive(c *gin.Context) {
	folderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RequireAccess(userID, model.ResourceFolder, folderID, model.RoleViewer); err != nil {
		respondError(c, err)
		return
	}
	entries, err := service.BuildArchiveEntries(folderID)
	if err != nil {
		respondError(c, err)
		return
	}

	folder, err := service.GetFolder(folderID)
	if err != nil {
		respondError(c, err)
		return
	}
	name := utils.SanitizeHeaderFilename(folder.Name) + ".zip"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", name))
	c.Header("Content-Type", "application/zip")

	zipWriter := zip.NewWriter(c.Writer)
	defer zipWriter.Close()

	bucket := config.AppConfig.BucketName
	for _, entry := range entries {
		if entry.IsDir {
			if _, err := zipWriter.Create(entry.ZipPath); err != nil {
				c.Status(http.StatusInternalServerError)
				return
			}
			continue
		}
		object, _, err := storage.Default.GetObject(
			c.Request.Context(),
			bucket,
			entry.File.StorageKey,
		)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		writer, err := zipWriter.Create(entry.ZipPath)
		if err != nil {
			_ = object.Close()
			c.Status(http.StatusInternalServerError)
			return
		}
		if _, err := io.Copy(writer, object); err != nil {
			_ = object.Close()
			c.Status(http.StatusInternalServerError)
			return
		}
		_ = object.Close()
	}
	service.LogActivity(userID, model.ActionDownload, model.ResourceFolder, folderID,
		map[string]interface{}{"archive": true})
}
