package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"blogsphere/internal/auth"
	apperrors "blogsphere/internal/errors"
	"blogsphere/internal/model"
)

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		userName      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful signup",
			email:    "Ada@Example.com ",
			password: "password123",
			userName: "ada",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ada@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("CodeExists", mock.Anything, mock.AnythingOfType("int")).Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "user already exists",
			email:    "taken@example.com",
			password: "password123",
			userName: "taken",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
		{
			name:     "duplicate key on insert",
			email:    "race@example.com",
			password: "password123",
			userName: "race",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("CodeExists", mock.Anything, mock.AnythingOfType("int")).Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), new(MockTokenStore))
			user, err := svc.Signup(context.Background(), tt.email, tt.password, tt.userName)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "ada@example.com", user.Email)
				assert.Equal(t, tt.userName, user.UserName)
				assert.GreaterOrEqual(t, user.Code, 100000)
				assert.Less(t, user.Code, 1000000)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signup_RetriesTakenCode(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("CodeExists", mock.Anything, mock.AnythingOfType("int")).Return(true, nil).Once()
	mockRepo.On("CodeExists", mock.Anything, mock.AnythingOfType("int")).Return(false, nil).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), new(MockTokenStore))
	_, err := svc.Signup(context.Background(), "new@example.com", "password123", "new")

	require.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "CodeExists", 2)
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	stored := &model.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: string(hashed)}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "ada@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ada@example.com").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "ada@example.com",
			password: "nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ada@example.com").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			jwtService := auth.NewJWTService("test-secret", time.Hour)

			svc := NewAuthService(mockRepo, jwtService, new(MockTokenStore))
			token, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, stored.ID.String(), claims.UserID)
				assert.Equal(t, stored.Email, user.Email)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes for remaining lifetime", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("Revoke", mock.Anything, "jti-1", mock.MatchedBy(func(ttl time.Duration) bool {
			return ttl > 50*time.Minute && ttl <= time.Hour
		})).Return(nil)

		svc := NewAuthService(new(MockUserRepository), auth.NewJWTService("s", time.Hour), store)
		err := svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour))

		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("already expired token is a no-op", func(t *testing.T) {
		store := new(MockTokenStore)
		svc := NewAuthService(new(MockUserRepository), auth.NewJWTService("s", time.Hour), store)

		assert.NoError(t, svc.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute)))
		store.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing token id", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), auth.NewJWTService("s", time.Hour), new(MockTokenStore))
		assert.ErrorIs(t, svc.Logout(context.Background(), "", time.Now().Add(time.Hour)), apperrors.ErrInvalidToken)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		store := new(MockTokenStore)
		boom := errors.New("redis down")
		store.On("Revoke", mock.Anything, "jti-3", mock.Anything).Return(boom)

		svc := NewAuthService(new(MockUserRepository), auth.NewJWTService("s", time.Hour), store)
		assert.ErrorIs(t, svc.Logout(context.Background(), "jti-3", time.Now().Add(time.Hour)), boom)
	})
}

func TestAuthService_IsRevoked(t *testing.T) {
	store := new(MockTokenStore)
	store.On("IsRevoked", mock.Anything, "gone").Return(true, nil)
	store.On("IsRevoked", mock.Anything, "live").Return(false, nil)
	store.On("IsRevoked", mock.Anything, "unknown").Return(false, errors.New("redis down"))

	svc := NewAuthService(new(MockUserRepository), auth.NewJWTService("s", time.Hour), store)

	assert.True(t, svc.IsRevoked(context.Background(), "gone"))
	assert.False(t, svc.IsRevoked(context.Background(), "live"))
	assert.False(t, svc.IsRevoked(context.Background(), "unknown"))
}
