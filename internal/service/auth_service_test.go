package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"newsact/internal/model"
)

type fakeAdminStore struct {
	byUsername map[string]model.Admin
	byID       map[string]model.Admin
}

func newFakeAdminStore(admins ...model.Admin) *fakeAdminStore {
	store := &fakeAdminStore{
		byUsername: map[string]model.Admin{},
		byID:       map[string]model.Admin{},
	}
	for _, a := range admins {
		store.byUsername[a.Username] = a
		store.byID[a.ID] = a
	}
	return store
}

func (f *fakeAdminStore) FindByID(_ context.Context, id string) (model.Admin, error) {
	a, ok := f.byID[id]
	if !ok {
		return model.Admin{}, model.ErrAdminNotFound
	}
	return a, nil
}

func (f *fakeAdminStore) FindByUsername(_ context.Context, username string) (model.Admin, error) {
	a, ok := f.byUsername[username]
	if !ok {
		return model.Admin{}, model.ErrAdminNotFound
	}
	return a, nil
}

func (f *fakeAdminStore) Create(_ context.Context, a model.Admin) error {
	f.byUsername[a.Username] = a
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAdminStore) Update(_ context.Context, a model.Admin) error {
	if _, ok := f.byID[a.ID]; !ok {
		return model.ErrAdminNotFound
	}
	f.byUsername[a.Username] = a
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAdminStore) Count(_ context.Context) (int, error) {
	return len(f.byID), nil
}

func testAdmin(t *testing.T, password string) model.Admin {
	t.Helper()

	digest, err := HashPassword(password)
	require.NoError(t, err)

	return model.Admin{
		ID:             "admin-1",
		Username:       "editor",
		HashedPassword: digest,
		FullName:       "Test Editor",
		Email:          "editor@example.com",
		Role:           "Editor",
		CreatedAt:      time.Now().UTC(),
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	admin := testAdmin(t, "s3cret-pass")
	svc, err := NewAuthService(newFakeAdminStore(admin), "test-signing-secret", time.Hour)
	require.NoError(t, err)

	t.Run("valid credentials return a bearer token", func(t *testing.T) {
		result, err := svc.Login(context.Background(), "editor", "s3cret-pass")
		require.NoError(t, err)
		require.NotEmpty(t, result.AccessToken)
		require.Equal(t, "Bearer", result.TokenType)
		require.Equal(t, int64(3600), result.ExpiresIn)
		require.Equal(t, "admin-1", result.Admin.ID)

		claims, err := svc.ValidateToken(result.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "admin-1", claims.AdminID)
		require.Equal(t, "editor", claims.Username)
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "editor", "wrong-pass")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("unknown username is invalid credentials", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody", "s3cret-pass")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	t.Parallel()

	admin := testAdmin(t, "irrelevant")

	t.Run("expired token is reported distinctly", func(t *testing.T) {
		svc, err := NewAuthService(newFakeAdminStore(admin), "test-signing-secret", time.Hour)
		require.NoError(t, err)
		svc.tokenTTL = -time.Minute

		token, err := svc.IssueToken(admin)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, model.ErrExpiredToken)
	})

	t.Run("token signed with a different secret is invalid", func(t *testing.T) {
		issuer, err := NewAuthService(newFakeAdminStore(admin), "secret-one", time.Hour)
		require.NoError(t, err)
		verifier, err := NewAuthService(newFakeAdminStore(admin), "secret-two", time.Hour)
		require.NoError(t, err)

		token, err := issuer.IssueToken(admin)
		require.NoError(t, err)

		_, err = verifier.ValidateToken(token)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("unsigned token never validates", func(t *testing.T) {
		svc, err := NewAuthService(newFakeAdminStore(admin), "test-signing-secret", time.Hour)
		require.NoError(t, err)

		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "admin-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		svc, err := NewAuthService(newFakeAdminStore(admin), "test-signing-secret", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken("not.a.token")
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("token without subject is invalid", func(t *testing.T) {
		svc, err := NewAuthService(newFakeAdminStore(admin), "test-signing-secret", time.Hour)
		require.NoError(t, err)

		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		token, err := raw.SignedString([]byte("test-signing-secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Parallel()

	admin := testAdmin(t, "old-pass")
	store := newFakeAdminStore(admin)
	svc, err := NewAuthService(store, "test-signing-secret", time.Hour)
	require.NoError(t, err)

	newName := "Renamed Editor"
	newPass := "new-pass"
	profile, err := svc.UpdateProfile(context.Background(), "admin-1", model.ProfileUpdateRequest{
		FullName: &newName,
		Password: &newPass,
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed Editor", profile.FullName)

	_, err = svc.Login(context.Background(), "editor", "old-pass")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "editor", "new-pass")
	require.NoError(t, err)
}

func TestAuthService_SeedDefaultAdmin(t *testing.T) {
	t.Parallel()

	store := newFakeAdminStore()
	svc, err := NewAuthService(store, "test-signing-secret", time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.SeedDefaultAdmin(context.Background(), "admin", "admin123"))
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Idempotent once an account exists.
	require.NoError(t, svc.SeedDefaultAdmin(context.Background(), "admin", "admin123"))
	count, err = store.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
}

func TestAuthService_RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewAuthService(newFakeAdminStore(), "   ", time.Hour)
	require.Error(t, err)
	require.False(t, errors.Is(err, model.ErrInvalidCredentials))
}
