package handler

import (
	"CloudVault/config"
	"CloudVault/internal/dto"
	"CloudVault/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShareResource grants a role to another account, or parks a pending invite
// when the email is unknown.
func ShareResource(c *gin.Context) {
	var req dto.ShareResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	userID := c.MustGet("user_id").(uint64)
	outcome, err := service.ShareResource(c.Request.Context(), userID,
		req.ResourceType, req.ResourceID, req.RecipientEmail, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if outcome.Invited {
		status = http.StatusAccepted
	}
	c.JSON(status, outcome)
}

// RevokeShare removes a grant.
func RevokeShare(c *gin.Context) {
	shareID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet("user_id").(uint64)
	if err := service.RevokeShare(userID, shareID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "success"})
}

// ListResourceShares lists who a resource is shared with.
func ListResourceShares(c *gin.Context) {
	resourceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	resourceType := c.Param("type")
	userID := c.MustGet("user_id").(uint64)
	shares, err := service.ListResourceShares(userID, resourceType, resourceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

// SharedWithMe lists resources other people shared to the caller.
func SharedWithMe(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	files, folders, err := service.SharedWithMe(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"files":   files,
		"folders": folders,
	})
}

// GetInvite shows a pending invite so the recipient can decide.
func GetInvite(c *gin.Context) {
	token := c.Param("token")
	invite, err := service.GetInvite(token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invite": invite})
}

// AcceptInvite turns a pending invite into a share for the logged-in user.
func AcceptInvite(c *gin.Context) {
	token := c.Param("token")
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":        "login required to accept an invite",
			"register_url": config.AppConfig.FrontendURL + "/register?invite=" + token,
		})
		return
	}
	userID := value.(uint64)
	if err := service.AcceptInvite(userID, token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "invite accepted"})
}
