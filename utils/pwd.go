package utils

import (
	"CloudVault/config"

	"golang.org/x/crypto/bcrypt"
)

// GetPwd hashes a password with bcrypt.
func GetPwd(pwd string) (string, error) {
	cost := config.AppConfig.BcryptCost
	if cost < bcrypt.DefaultCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPwd verifies a password against its bcrypt hash.
func CheckPwd(pwd string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)) == nil
}
