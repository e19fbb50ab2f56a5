package service

import (
	"CloudVault/config"
	"CloudVault/internal/repo"
	"CloudVault/utils"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/net/context"
)

const (
	OtpEmailVerify   = "EMAIL_VERIFY"
	OtpResetPassword = "RESET_PASSWORD"
)

type otpRecord struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func otpKey(otpType string, userID uint64) string {
	return fmt.Sprintf("otp:%s:%d", otpType, userID)
}

// CreateOtp issues a 6-digit code scoped to (user, type). Writing the key
// replaces any previous code of the same type, so older codes stop working.
func CreateOtp(ctx context.Context, userID uint64, otpType string) (string, error) {
	code := utils.GenOtpCode()
	record := otpRecord{
		Code:      code,
		ExpiresAt: time.Now().Add(config.AppConfig.OtpTTL),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	// keep the key past the logical expiry so an expired code is reported as
	// expired rather than invalid
	ttl := config.AppConfig.OtpTTL + 30*time.Minute
	if err := repo.Redis.Set(ctx, otpKey(otpType, userID), data, ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// VerifyOtp checks a code and consumes it on success (single use).
func VerifyOtp(ctx context.Context, userID uint64, otpType, code string) error {
	key := otpKey(otpType, userID)
	val, err := repo.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrInvalidOtp
	}
	if err != nil {
		return err
	}
	var record otpRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil {
		return err
	}
	if record.Code != code {
		return ErrInvalidOtp
	}
	if time.Now().After(record.ExpiresAt) {
		repo.Redis.Del(ctx, key)
		return ErrOtpExpired
	}
	return repo.Redis.Del(ctx, key).Err()
}
