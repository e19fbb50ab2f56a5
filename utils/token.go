package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"

	"github.com/google/uuid"
)

// GetToken returns a random identifier for storage keys.
func GetToken() string {
	return uuid.NewString()
}

// NewSecureToken returns a 256-bit random token in hex, used for invite and
// public link tokens.
func NewSecureToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure is unrecoverable for token issuance
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// GenOtpCode generates a 6-digit numeric one-time code.
func GenOtpCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		panic(err)
	}
	code := n.Int64() + 100000
	return big.NewInt(code).String()
}
