package identity

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use secret for resetting a password
type PasswordResetToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewPasswordResetToken creates a token of 32 random bytes, hex encoded
func NewPasswordResetToken(userID uuid.UUID, ttl time.Duration) (*PasswordResetToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	now := time.Now()
	return &PasswordResetToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     hex.EncodeToString(buf),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// IsExpired reports whether the token is no longer usable at now
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
