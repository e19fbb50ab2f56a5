package handler

import (
	"CloudVault/internal/dto"
	"CloudVault/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Login authenticates a verified user and returns a JWT.
func Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	token, user, err := service.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg":   "success",
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user's profile and storage usage.
func Me(c *gin.Context) {
	userID := c.MustGet("user_id").(uint64)
	user, err := service.FindUserById(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	usage, err := service.StorageUsage(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"usage_bytes": usage,
	})
}
