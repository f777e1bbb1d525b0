package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopbooks/backend/internal/domain/billing"
	"github.com/shopbooks/backend/internal/domain/identity"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// TokenIssuer creates signed access tokens
type TokenIssuer interface {
	Issue(userID, tenantID uuid.UUID, role string) (token string, expiresAt time.Time, err error)
}

// TokenBlacklist revokes tokens before their natural expiry
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, until time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthService handles user registration, login and logout
type AuthService struct {
	users     identity.UserRepository
	tenants   billing.TenantRepository
	issuer    TokenIssuer
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users identity.UserRepository,
	tenants billing.TenantRepository,
	issuer TokenIssuer,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tenants:   tenants,
		issuer:    issuer,
		blacklist: blacklist,
		logger:    logger,
	}
}

// RegisterInput carries a user registration request
type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=200"`
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=owner manager staff"`
}

// LoginInput carries a login request
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is a successful login response
type LoginResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *identity.User `json:"user"`
}

// Register adds a user to an existing tenant
func (s *AuthService) Register(ctx context.Context, tenantID uuid.UUID, input RegisterInput) (*identity.User, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, shared.ErrForbidden
	}

	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil && !shared.IsDomainErrorWithCode(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewUser(tenantID, input.Name, input.Email, input.Password, identity.UserRole(input.Role))
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login verifies credentials and issues an access token. Users of suspended
// tenants cannot log in.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if shared.IsDomainErrorWithCode(err, "NOT_FOUND") {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(input.Password) {
		return nil, shared.ErrUnauthorized
	}

	tenant, err := s.tenants.FindByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, shared.ErrForbidden
	}

	token, expiresAt, err := s.issuer.Issue(user.ID, user.TenantID, string(user.Role))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.String("tenant_id", user.TenantID.String()),
		zap.String("user_id", user.ID.String()))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout revokes the presented token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	return s.blacklist.Revoke(ctx, token, expiresAt)
}

// ChangePassword sets a new password after verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, current, next string) error {
	user, err := s.users.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(current) {
		return shared.ErrUnauthorized
	}
	if err := user.SetPassword(next); err != nil {
		return err
	}
	return s.users.Save(ctx, user)
}
