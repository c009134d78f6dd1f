package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// NewResetToken gera o token bruto enviado por email e o hash persistido
func NewResetToken() (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, HashToken(raw), nil
}

// HashToken é o SHA-256 em hex do token bruto
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ResetTokenGenerator implementa ports.ResetTokens
type ResetTokenGenerator struct{}

func (ResetTokenGenerator) New() (string, string, error) {
	return NewResetToken()
}

func (ResetTokenGenerator) Hash(raw string) string {
	return HashToken(raw)
}
