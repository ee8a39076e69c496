package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// TokenResult is an issued access and refresh token pair
type TokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	TokenResult
	User UserInfo
}

// UserInfo is the public view of a user
type UserInfo struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  identity.Role
}

func toUserInfo(u *identity.User) UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// LogoutInput identifies the access token to revoke
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
}

// ForgotPasswordResult is returned whether or not the email is known.
// DevToken is only set when dev tokens are exposed and the user exists.
type ForgotPasswordResult struct {
	Message  string
	DevToken string
}

// ResetPasswordInput contains a reset token and the new password
type ResetPasswordInput struct {
	Token    string
	Password string
}

// EnsureAdminInput creates or promotes an administrator
type EnsureAdminInput struct {
	Email    string
	Password string
	Name     string
}
