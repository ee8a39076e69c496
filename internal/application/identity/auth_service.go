package identity

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/identity"
	"github.com/storelaunch/backend/internal/domain/shared"
	"github.com/storelaunch/backend/internal/infrastructure/auth"
	"github.com/storelaunch/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Messages returned by the password reset flow
const (
	ForgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."
	ResetSuccessMessage   = "Password reset successfully"
)

// Identity errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrInvalidResetToken  = shared.InvalidInput("Invalid or expired reset token")
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	BcryptCost     int
	ResetTokenTTL  time.Duration
	MinPasswordLen int
	ExposeDevToken bool
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		BcryptCost:     identity.DefaultBcryptCost,
		ResetTokenTTL:  time.Hour,
		MinPasswordLen: 6,
	}
}

// AuthService handles authentication and password resets
type AuthService struct {
	userRepo   identity.UserRepository
	tokenRepo  identity.ResetTokenRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	publisher  shared.EventPublisher
	metrics    *telemetry.LaunchMetrics
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	tokenRepo identity.ResetTokenRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	publisher shared.EventPublisher,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		publisher:  publisher,
		config:     config,
		logger:     logger,
	}
}

// SetMetrics attaches business counters
func (s *AuthService) SetMetrics(m *telemetry.LaunchMetrics) {
	s.metrics = m
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := identity.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, shared.InvalidInput("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		s.logger.Warn("Login for unknown email", zap.String("email", email))
		s.metrics.LoginAttempt(ctx, "failure")
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		s.metrics.LoginAttempt(ctx, "failure")
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.metrics.LoginAttempt(ctx, "success")
	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return &LoginResult{TokenResult: *tokens, User: toUserInfo(user)}, nil
}

// RefreshToken exchanges a refresh token for a new pair carrying the
// user's current role
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, tokenError(err)
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, tokenError(auth.ErrInvalidClaims)
	}
	if revoked, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime()); err == nil && revoked {
		return nil, tokenError(auth.ErrTokenBlacklisted)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "User not found")
		}
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(refreshToken, tokenInput(user))
	if err != nil {
		s.logger.Warn("Token refresh failed", zap.Error(err))
		return nil, tokenError(err)
	}
	return toTokenResult(pair), nil
}

// Logout revokes the presented access token until it expires
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenJTI == "" {
		return nil
	}
	ttl := input.TokenTTL
	if ttl <= 0 {
		ttl = s.jwtService.GetAccessTokenExpiration()
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", input.UserID.String()))
	return nil
}

// GetCurrentUser returns the public view of the authenticated user
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("User not found")
		}
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// ForgotPassword starts a password reset. The message never reveals
// whether the email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return nil, shared.InvalidInput("Email is required")
	}
	result := &ForgotPasswordResult{Message: ForgotPasswordMessage}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Info("Password reset requested for unknown email")
			return result, nil
		}
		return nil, err
	}

	if err := s.tokenRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return nil, err
	}
	token, err := identity.NewPasswordResetToken(user.ID, s.config.ResetTokenTTL)
	if err != nil {
		return nil, err
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	// Links are logged instead of mailed
	s.logger.Info("Password reset token issued",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", token.ExpiresAt))
	if s.config.ExposeDevToken {
		result.DevToken = token.Token
	}
	return result, nil
}

// VerifyResetToken reports whether a token exists and has not expired
func (s *AuthService) VerifyResetToken(ctx context.Context, token string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, shared.InvalidInput("Token is required")
	}
	t, err := s.tokenRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return !t.IsExpired(time.Now()), nil
}

// ResetPassword consumes a reset token and sets a new password. Tokens
// issued to the user before the reset are revoked.
func (s *AuthService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if input.Token == "" || input.Password == "" {
		return shared.InvalidInput("Token and password are required")
	}
	if len(input.Password) < s.config.MinPasswordLen {
		return shared.InvalidInput("Password must be at least " + strconv.Itoa(s.config.MinPasswordLen) + " characters")
	}

	token, err := s.tokenRepo.FindByToken(ctx, input.Token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Password reset with unknown token")
			return ErrInvalidResetToken
		}
		return err
	}
	if token.IsExpired(time.Now()) {
		s.logger.Warn("Password reset with expired token", zap.String("user_id", token.UserID.String()))
		return ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if err := user.ResetPassword(input.Password, s.config.BcryptCost); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	if err := s.tokenRepo.Delete(ctx, token.ID); err != nil {
		return err
	}
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to revoke sessions after password reset", zap.Error(err))
	}

	_ = s.publisher.Publish(ctx, user.GetDomainEvents()...)
	user.ClearDomainEvents()

	s.logger.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

// PurgeExpiredTokens deletes reset tokens that have expired
func (s *AuthService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	n, err := s.tokenRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("Expired reset tokens purged", zap.Int64("count", n))
	}
	return n, nil
}

func (s *AuthService) issue(user *identity.User) (*TokenResult, error) {
	pair, err := s.jwtService.GenerateTokenPair(tokenInput(user))
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}
	return toTokenResult(pair), nil
}

func tokenInput(user *identity.User) auth.GenerateTokenInput {
	return auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
	}
}

func toTokenResult(pair *auth.TokenPair) *TokenResult {
	return &TokenResult{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_INVALID", "Maximum token refresh count exceeded. Please log in again")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError("TOKEN_INVALID", "Token has been revoked")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	}
}
