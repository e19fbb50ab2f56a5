package handler

import (
	"CloudVault/internal/dto"
	"CloudVault/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CreatePublicLink mints an anonymous link carrying the requested role.
func CreatePublicLink(c *gin.Context) {
	var req dto.CreatePublicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	var expiresAt *time.Time
	if req.ExpiresAt != nil && *req.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expires_at must be RFC 3339"})
			return
		}
		expiresAt = &parsed
	}
	userID := c.MustGet("user_id").(uint64)
	link, err := service.CreatePublicLink(c.Request.Context(), userID,
		req.ResourceType, req.ResourceID, req.Role, req.Password, expiresAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"link": link})
}

// ListPublicLinks lists the caller's links.
func ListPublicLinks(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	links, err := service.ListPublicLinks(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links})
}

// RevokePublicLink deletes a link.
func RevokePublicLink(c *gin.Context) {
	linkID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RevokePublicLink(c.Request.Context(), userID, linkID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// AccessPublicLink resolves a link token for anonymous callers. Password
// gated links take the password in the body.
func AccessPublicLink(c *gin.Context) {
	token := c.Param("token")
	var req dto.AccessPublicLinkRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}
	}
	access, err := service.AccessPublicLink(c.Request.Context(), token, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, access)
}

// PublicLinkDownload hands anonymous callers a presigned URL when the link
// points at a file.
func PublicLinkDownload(c *gin.Context) {
	token := c.Param("token")
	var req dto.AccessPublicLinkRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}
	}
	access, err := service.AccessPublicLink(c.Request.Context(), token, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if access.ResourceType != "file" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "link does not point at a file"})
		return
	}
	url, err := service.DownloadURL(c.Request.Context(), access.ResourceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
