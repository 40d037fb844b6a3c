package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// fakeUserStore is an in-memory store.UserStore enforcing the username
// uniqueness constraint the real table carries.
type fakeUserStore struct {
	mu         sync.Mutex
	byID       map[uuid.UUID]*domain.User
	byUsername map[string]*domain.User
}

var _ store.UserStore = (*fakeUserStore)(nil)

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:       make(map[uuid.UUID]*domain.User),
		byUsername: make(map[string]*domain.User),
	}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byUsername[user.Username]; exists {
		return store.ErrUsernameExists
	}
	copied := *user
	f.byID[user.ID] = &copied
	f.byUsername[user.Username] = &copied
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byUsername[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

const testJWTSecret = "test-secret-that-is-at-least-32-characters"

func newTestUserService(t *testing.T) (UserService, auth.JWTService, *fakeUserStore) {
	t.Helper()
	userStore := newFakeUserStore()
	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	// MinCost keeps the hashing rounds cheap for tests.
	svc := NewUserService(
		userStore,
		jwtService,
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewBcryptVerifier(),
		testLogger(),
	)
	return svc, jwtService, userStore
}

func TestSignupIssuesValidToken(t *testing.T) {
	t.Parallel()
	svc, jwtService, _ := newTestUserService(t)

	user, token, err := svc.Signup(context.Background(), "alice", "password123")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, token)

	assert.Empty(t, user.Password, "plaintext must be cleared after hashing")
	assert.NotEmpty(t, user.HashedPassword)

	claims, err := jwtService.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID, "token must identify the new user")
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestUserService(t)

	_, _, err := svc.Signup(context.Background(), "ab", "password123")
	assert.ErrorIs(t, err, domain.ErrUsernameTooShort)

	_, _, err = svc.Signup(context.Background(), "alice", "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestSignupDuplicateUsername(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestUserService(t)

	_, _, err := svc.Signup(context.Background(), "alice", "password123")
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), "alice", "different456")
	assert.ErrorIs(t, err, store.ErrUsernameExists)
}

func TestLoginRoundTrip(t *testing.T) {
	t.Parallel()
	svc, jwtService, _ := newTestUserService(t)

	user, _, err := svc.Signup(context.Background(), "alice", "password123")
	require.NoError(t, err)

	loggedIn, token, err := svc.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := jwtService.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID,
		"login token must identify the same account as signup")
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestUserService(t)

	_, _, err := svc.Signup(context.Background(), "alice", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice", "wrongpassword")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestUserService(t)

	_, _, err := svc.Login(context.Background(), "nobody", "password123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials,
		"unknown username and wrong password must be indistinguishable")
}
