package service

import (
	"CloudVault/config"
	"CloudVault/internal/dto"
	"CloudVault/internal/repo"
	"CloudVault/model"
	"CloudVault/utils"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

// FindUserByEmail returns a user by email.
func FindUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := repo.Db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserById returns a user by ID.
func FindUserById(userId uint64) (*model.User, error) {
	var user model.User
	if err := repo.Db.Where("id = ?", userId).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Register creates an unverified user, converts any pending invites addressed
// to the email, and mails a verification code. The user row is kept even when
// the mail cannot be sent; the failure is reported as a soft failure and
// SendVerifyOtp is the resend path.
func Register(ctx context.Context, email, password, name string) (*dto.RegisterResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if _, err := FindUserByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := utils.GetPwd(password)
	if err != nil {
		return nil, err
	}
	user := model.User{
		Email:    email,
		Password: hash,
		Name:     name,
	}
	if err := repo.Db.Create(&user).Error; err != nil {
		if repo.IsDuplicateEntry(err) {
			return nil, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return nil, err
	}

	result := &dto.RegisterResult{UserID: user.ID}

	// close the loop for invites that arrived before the account existed
	softFailures := ActivatePendingShares(&user)
	result.SoftFailures = append(result.SoftFailures, softFailures...)

	otp, err := CreateOtp(ctx, user.ID, OtpEmailVerify)
	if err != nil {
		result.SoftFailures = append(result.SoftFailures, "verification otp not issued: "+err.Error())
		return result, nil
	}
	if err := QueueMail(ctx, user.Email, "Verify your email address", verifyEmailBody(otp)); err != nil {
		result.SoftFailures = append(result.SoftFailures, "verification email not sent: "+err.Error())
	}
	return result, nil
}

// ActivatePendingShares converts every pending share addressed to the user's
// email into a real share. Individual duplicate conflicts count as consumed
// so one bad invite does not abort the rest; an invite whose activation
// failed outright keeps its row for a later retry.
func ActivatePendingShares(user *model.User) []string {
	var pending []model.PendingShare
	if err := repo.Db.Where("email = ?", user.Email).Find(&pending).Error; err != nil {
		return []string{"pending invite lookup failed: " + err.Error()}
	}
	var soft []string
	for _, invite := range pending {
		share := model.Share{
			ResourceType: invite.ResourceType,
			ResourceID:   invite.ResourceID,
			SharedWith:   user.ID,
			Role:         invite.Role,
			SharedBy:     invite.InvitedBy,
		}
		if err := repo.Db.Create(&share).Error; err != nil && !repo.IsDuplicateEntry(err) {
			soft = append(soft, fmt.Sprintf("invite %d not activated: %v", invite.ID, err))
			continue
		}
		if err := repo.Db.Delete(&model.PendingShare{}, invite.ID).Error; err != nil {
			soft = append(soft, fmt.Sprintf("invite %d cleanup failed: %v", invite.ID, err))
		}
	}
	return soft
}

// SendVerifyOtp re-issues the email verification code.
func SendVerifyOtp(ctx context.Context, email string) error {
	user, err := FindUserByEmail(email)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return fmt.Errorf("%w: email already verified", ErrValidation)
	}
	otp, err := CreateOtp(ctx, user.ID, OtpEmailVerify)
	if err != nil {
		return err
	}
	return QueueMail(ctx, user.Email, "Verify your email", verifyEmailBody(otp))
}

// VerifyEmail consumes a verification code and marks the user verified.
func VerifyEmail(ctx context.Context, email, otp string) error {
	user, err := FindUserByEmail(email)
	if err != nil {
		return err
	}
	if err := VerifyOtp(ctx, user.ID, OtpEmailVerify, otp); err != nil {
		return err
	}
	return repo.Db.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("email_verified", true).Error
}

// Login checks credentials and returns a signed token. "no such user" and
// "wrong password" are deliberately indistinguishable.
func Login(email, password string) (string, *model.User, error) {
	user, err := FindUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !utils.CheckPwd(password, user.Password) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return "", nil, ErrEmailNotVerified
	}
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ForgotPassword issues a reset code when the email exists. Callers always
// get a success-shaped answer to avoid account enumeration.
func ForgotPassword(ctx context.Context, email string) {
	user, err := FindUserByEmail(email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("forgot password lookup failed: %v", err)
		}
		return
	}
	otp, err := CreateOtp(ctx, user.ID, OtpResetPassword)
	if err != nil {
		log.Printf("reset otp for %s failed: %v", user.Email, err)
		return
	}
	resetURL := config.AppConfig.FrontendURL + "/reset-password?email=" + url.QueryEscape(user.Email)
	NotifyMail(ctx, user.Email, "Reset your password", resetPasswordBody(resetURL, otp))
}

// ResetPassword consumes a reset code and replaces the password.
func ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	user, err := FindUserByEmail(email)
	if err != nil {
		return err
	}
	if err := VerifyOtp(ctx, user.ID, OtpResetPassword, otp); err != nil {
		return err
	}
	hash, err := utils.GetPwd(newPassword)
	if err != nil {
		return err
	}
	return repo.Db.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("password", hash).Error
}
