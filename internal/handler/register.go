package handler

import (
	"CloudVault/internal/dto"
	"CloudVault/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register creates a new account and fires off the verification email.
func Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	result, err := service.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"msg":           "registered, check your inbox for the verification code",
		"user_id":       result.UserID,
		"soft_failures": result.SoftFailures,
	})
}

// SendVerifyOtp re-issues the email verification code.
func SendVerifyOtp(c *gin.Context) {
	var req dto.SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := service.SendVerifyOtp(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "verification code sent"})
}

// VerifyEmail consumes the emailed code and unlocks login.
func VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := service.VerifyEmail(c.Request.Context(), req.Email, req.Otp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "email verified"})
}

// ForgotPassword always answers OK so the endpoint cannot be used to probe
// which emails have accounts.
func ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	service.ForgotPassword(c.Request.Context(), req.Email)
	c.JSON(http.StatusOK, gin.H{"msg": "if the account exists, a reset code was sent"})
}

// ResetPassword sets a new password after OTP verification.
func ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := service.ResetPassword(c.Request.Context(), req.Email, req.Otp, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "password updated"})
}
