package users

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gatherhub/server/internal/auth"
)

type stubRepo struct {
	byEmail map[string]User
	nextID  int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byEmail: make(map[string]User)}
}

func (s *stubRepo) Create(_ context.Context, params CreateParams) (User, error) {
	if _, ok := s.byEmail[params.Email]; ok {
		return User{}, ErrEmailTaken
	}
	s.nextID++
	user := User{
		ID:           s.nextID,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
	}
	s.byEmail[params.Email] = user
	return user, nil
}

func (s *stubRepo) GetByEmail(_ context.Context, email string) (User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *stubRepo) Count(_ context.Context) int {
	return len(s.byEmail)
}

func newTestService() *Service {
	return NewService(newStubRepo(), auth.NewPasswordHasher(4), zerolog.Nop())
}

func TestRegister(t *testing.T) {
	svc := newTestService()

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123")
	require.NoError(t, err)
	require.Equal(t, int64(1), user.ID)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotEmpty(t, user.PasswordHash)
	require.NotEqual(t, "pass123", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123")
	require.NoError(t, err)

	// Other fields differing does not matter; the email is the unique key.
	_, err = svc.Register(context.Background(), "Another Alice", "alice@example.com", "other")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService()

	registered, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123")
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "alice@example.com", "pass123")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "pass123")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pass123")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)
}
