package identity

import (
	"context"
	"errors"

	"github.com/storelaunch/backend/internal/domain/identity"
	"github.com/storelaunch/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService manages accounts outside the login flow
type UserService struct {
	userRepo   identity.UserRepository
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, bcryptCost: bcryptCost, logger: logger}
}

// EnsureAdmin creates an ADMIN account, or promotes and re-keys an
// existing account with the same email. It reports whether a user was created.
func (s *UserService) EnsureAdmin(ctx context.Context, input EnsureAdminInput) (*UserInfo, bool, error) {
	if input.Password == "" {
		return nil, false, shared.InvalidInput("Password is required")
	}

	existing, err := s.userRepo.FindByEmail(ctx, identity.NormalizeEmail(input.Email))
	switch {
	case err == nil:
		if err := existing.ResetPassword(input.Password, s.bcryptCost); err != nil {
			return nil, false, err
		}
		if input.Name != "" {
			existing.SetName(input.Name)
		}
		if err := existing.AssignRole(identity.RoleAdmin); err != nil {
			return nil, false, err
		}
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		s.logger.Info("Existing user promoted to admin", zap.String("user_id", existing.ID.String()))
		info := toUserInfo(existing)
		return &info, false, nil
	case !errors.Is(err, shared.ErrNotFound):
		return nil, false, err
	}

	user, err := identity.NewUser(input.Email, input.Password, input.Name, s.bcryptCost)
	if err != nil {
		return nil, false, err
	}
	if err := user.AssignRole(identity.RoleAdmin); err != nil {
		return nil, false, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	s.logger.Info("Admin user created", zap.String("user_id", user.ID.String()))
	info := toUserInfo(user)
	return &info, true, nil
}
