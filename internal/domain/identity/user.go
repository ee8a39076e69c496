package identity

import (
	"regexp"
	"strings"

	"github.com/storelaunch/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the access level of a user
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RolePM          Role = "PM"
	RoleContributor Role = "CONTRIBUTOR"
	RoleViewer      Role = "VIEWER"
)

// DefaultBcryptCost matches the cost used for all stored hashes
const DefaultBcryptCost = 10

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RolePM, RoleContributor, RoleViewer:
		return true
	}
	return false
}

// ParseRole converts a string to a Role
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.InvalidInput("Invalid role: " + s)
	}
	return r, nil
}

// User is an account that can sign in
type User struct {
	shared.BaseAggregateRoot
	Email        string
	PasswordHash string
	Name         string
	Role         Role
}

// NewUser creates a user with a hashed password and the VIEWER role
func NewUser(email, password, name string, cost int) (*User, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, shared.InvalidInput("Password is required")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Name:              strings.TrimSpace(name),
		Role:              RoleViewer,
	}
	if err := user.hash(password, cost); err != nil {
		return nil, err
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))
	return user, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ResetPassword replaces the password hash
func (u *User) ResetPassword(password string, cost int) error {
	if err := u.hash(password, cost); err != nil {
		return err
	}
	u.Touch()
	u.IncrementVersion()
	u.AddDomainEvent(NewUserPasswordResetEvent(u))
	return nil
}

// AssignRole changes the role of the user
func (u *User) AssignRole(role Role) error {
	if !role.IsValid() {
		return shared.InvalidInput("Invalid role: " + string(role))
	}
	u.Role = role
	u.Touch()
	u.IncrementVersion()
	return nil
}

// SetName updates the display name
func (u *User) SetName(name string) {
	u.Name = strings.TrimSpace(name)
	u.Touch()
	u.IncrementVersion()
}

// HasAnyRole reports whether the user holds one of roles
func (u *User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (u *User) hash(password string, cost int) error {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(h)
	return nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return shared.InvalidInput("Email is required")
	}
	if len(email) > 200 || !emailRegex.MatchString(email) {
		return shared.InvalidInput("Invalid email format")
	}
	return nil
}
