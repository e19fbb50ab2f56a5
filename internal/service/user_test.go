package service

import (
	"CloudVault/internal/repo"
	"CloudVault/model"
	"context"
	"errors"
	"testing"
)

func TestRegisterAndVerifyFlow(t *testing.T) {
	cleanTables(t)

	result, err := Register(context.Background(), "new@test.com", "secret123", "New User")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.UserID == 0 {
		t.Fatal("user id missing")
	}

	// login is locked until the email is verified
	if _, _, err := Login("new@test.com", "secret123"); !errors.Is(err, ErrEmailNotVerified) {
		t.Fatalf("login before verify = %v, want ErrEmailNotVerified", err)
	}

	otp, err := CreateOtp(context.Background(), result.UserID, OtpEmailVerify)
	if err != nil {
		t.Fatal(err)
	}
	if err := VerifyEmail(context.Background(), "new@test.com", otp); err != nil {
		t.Fatalf("VerifyEmail failed: %v", err)
	}

	token, user, err := Login("new@test.com", "secret123")
	if err != nil {
		t.Fatalf("login after verify failed: %v", err)
	}
	if token == "" || user.ID != result.UserID {
		t.Fatalf("token = %q, user = %+v", token, user)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	cleanTables(t)
	newTestUser(t, "taken@test.com")

	_, err := Register(context.Background(), "taken@test.com", "secret123", "")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate register = %v, want ErrConflict", err)
	}
}

func TestPasswordIsHashed(t *testing.T) {
	cleanTables(t)
	result, err := Register(context.Background(), "hash@test.com", "plaintext1", "")
	if err != nil {
		t.Fatal(err)
	}
	var user model.User
	if err := repo.Db.First(&user, result.UserID).Error; err != nil {
		t.Fatal(err)
	}
	if user.Password == "plaintext1" || user.Password == "" {
		t.Fatal("password must be stored as a hash")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	cleanTables(t)
	newTestUser(t, "who@test.com")

	if _, _, err := Login("who@test.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	// unknown email answers the same way
	if _, _, err := Login("ghost@test.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email = %v, want ErrInvalidCredentials", err)
	}
}

func TestOtpSingleUse(t *testing.T) {
	cleanTables(t)
	user := newTestUser(t, "otp@test.com")

	otp, err := CreateOtp(context.Background(), user.ID, OtpResetPassword)
	if err != nil {
		t.Fatal(err)
	}
	if len(otp) != 6 {
		t.Fatalf("otp %q, want 6 digits", otp)
	}
	if err := VerifyOtp(context.Background(), user.ID, OtpResetPassword, otp); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}
	if err := VerifyOtp(context.Background(), user.ID, OtpResetPassword, otp); !errors.Is(err, ErrInvalidOtp) {
		t.Fatalf("second verify = %v, want ErrInvalidOtp", err)
	}
}

func TestOtpWrongCode(t *testing.T) {
	cleanTables(t)
	user := newTestUser(t, "otp2@test.com")

	if _, err := CreateOtp(context.Background(), user.ID, OtpResetPassword); err != nil {
		t.Fatal(err)
	}
	if err := VerifyOtp(context.Background(), user.ID, OtpResetPassword, "000000"); !errors.Is(err, ErrInvalidOtp) {
		t.Fatalf("wrong code = %v, want ErrInvalidOtp", err)
	}
}

func TestNewOtpReplacesOld(t *testing.T) {
	cleanTables(t)
	user := newTestUser(t, "otp3@test.com")

	first, err := CreateOtp(context.Background(), user.ID, OtpEmailVerify)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CreateOtp(context.Background(), user.ID, OtpEmailVerify)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Skip("codes collided, nothing to assert")
	}
	if err := VerifyOtp(context.Background(), user.ID, OtpEmailVerify, first); !errors.Is(err, ErrInvalidOtp) {
		t.Fatalf("stale code = %v, want ErrInvalidOtp", err)
	}
	if err := VerifyOtp(context.Background(), user.ID, OtpEmailVerify, second); err != nil {
		t.Fatalf("latest code failed: %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	cleanTables(t)
	user := newTestUser(t, "reset@test.com")

	otp, err := CreateOtp(context.Background(), user.ID, OtpResetPassword)
	if err != nil {
		t.Fatal(err)
	}
	if err := ResetPassword(context.Background(), user.Email, otp, "brand-new-pass"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if _, _, err := Login(user.Email, "123456"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still works: %v", err)
	}
	if _, _, err := Login(user.Email, "brand-new-pass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
