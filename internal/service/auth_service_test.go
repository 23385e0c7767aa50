package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beerich/beerich-api/internal/domain"
	"github.com/beerich/beerich-api/internal/repository"
)

type fakeUserRepository struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*domain.User{}}
}

func (r *fakeUserRepository) CreateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = fmt.Sprintf("user-%03d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepository) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func newTestAuthService() AuthService {
	return NewAuthService(AuthServiceConfig{
		UserRepo:          newFakeUserRepository(),
		JWTSecret:         "test-secret",
		AccessExpiration:  15 * time.Minute,
		RefreshExpiration: 7 * 24 * time.Hour,
	})
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newTestAuthService()

	registered, err := svc.Register(context.Background(), "bee@example.com", "hunter22", "Bee")
	require.NoError(t, err)

	assert.NotEmpty(t, registered.User.ID)
	assert.Equal(t, "bee@example.com", registered.User.Email)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.NotEqual(t, "hunter22", registered.User.PasswordHash)

	loggedIn, err := svc.Login(context.Background(), "bee@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(context.Background(), "bee@example.com", "hunter22", "Bee")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "bee@example.com", "other", "Other")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(context.Background(), "bee@example.com", "hunter22", "Bee")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "bee@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	svc := newTestAuthService()

	registered, err := svc.Register(context.Background(), "bee@example.com", "hunter22", "Bee")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "bee@example.com", claims.Email)

	_, err = svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestAuthService_TokenFromDifferentSecretRejected(t *testing.T) {
	svc := newTestAuthService()
	other := NewAuthService(AuthServiceConfig{
		UserRepo:          newFakeUserRepository(),
		JWTSecret:         "different-secret",
		AccessExpiration:  15 * time.Minute,
		RefreshExpiration: 7 * 24 * time.Hour,
	})

	registered, err := svc.Register(context.Background(), "bee@example.com", "hunter22", "Bee")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(registered.AccessToken)
	assert.Error(t, err)
}

func TestAuthService_RefreshAccessToken(t *testing.T) {
	svc := newTestAuthService()

	registered, err := svc.Register(context.Background(), "bee@example.com", "hunter22", "Bee")
	require.NoError(t, err)

	pair, err := svc.RefreshAccessToken(context.Background(), registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
}
