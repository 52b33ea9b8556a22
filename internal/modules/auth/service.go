package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"servicehub/internal/domain"
	"servicehub/internal/repository"
)

// Service contains the signup, signin and profile logic.
type Service struct {
	users UserRepositoryInterface
	jwt   tokenIssuer
}

func NewService(users UserRepositoryInterface, jwt tokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

// Signup creates a customer or, for role PROVIDER, a user together with its
// provider profile, and issues a token for it.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RoleCustomer
	if req.Role == string(domain.RoleProvider) {
		role = domain.RoleProvider
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        req.Phone,
		Role:         role,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}

	var provider *domain.Provider
	if role == domain.RoleProvider {
		name := strings.TrimSpace(req.BusinessName)
		if name == "" {
			name = user.FullName()
		}
		provider = &domain.Provider{BusinessName: name, IsAvailable: true}
	}

	if err := s.users.Create(ctx, user, provider); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *Service) Signin(ctx context.Context, req SigninRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}
