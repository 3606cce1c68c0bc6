package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogsphere/internal/auth"
	apperrors "blogsphere/internal/errors"
	"blogsphere/internal/model"
	"blogsphere/internal/repository"
)

const (
	bcryptCost      = 10
	codeMin         = 100000
	codeSpan        = 900000
	codeGenAttempts = 5
)

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, email, password, userName string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Signup creates a new user with a hashed password and a random public code.
func (s *authService) Signup(ctx context.Context, email, password, userName string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		UserName:     strings.TrimSpace(userName),
		PasswordHash: string(hashedPassword),
		Code:         code,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) uniqueCode(ctx context.Context) (int, error) {
	for i := 0; i < codeGenAttempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
		if err != nil {
			return 0, fmt.Errorf("generate code: %w", err)
		}
		code := codeMin + int(n.Int64())
		taken, err := s.userRepo.CodeExists(ctx, code)
		if err != nil {
			return 0, fmt.Errorf("check code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return 0, errors.New("could not allocate a unique user code")
}

// Login authenticates a user and returns a signed access token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// Logout revokes the token until the moment it would have expired.
func (s *authService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return apperrors.ErrInvalidToken
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.tokenStore.Revoke(ctx, tokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token was logged out.
func (s *authService) IsRevoked(ctx context.Context, tokenID string) bool {
	revoked, err := s.tokenStore.IsRevoked(ctx, tokenID)
	return err == nil && revoked
}
