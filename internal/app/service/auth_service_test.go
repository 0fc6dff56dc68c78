package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"myflix/internal/common"
	"myflix/internal/common/security"
	"myflix/internal/domain/repository"
)

func newAuthService() (*AuthService, repository.UserRepository, *security.PasswordHasher) {
	userRepo := repository.NewMemoryUserRepository()
	hasher := security.NewPasswordHasher(bcrypt.MinCost)
	tokens := security.NewTokenManager([]byte("test-secret"), time.Hour)
	return NewAuthService(userRepo, hasher, tokens), userRepo, hasher
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	svc, userRepo, hasher := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: "alice01", Password: "secret", Email: "a@b.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice01", user.Username)
	assert.Empty(t, user.Favorites)

	stored, err := userRepo.FindByUsername(ctx, "alice01")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.True(t, hasher.Verify("secret", stored.PasswordHash))
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	svc, userRepo, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice01", Password: "secret", Email: "a@b.com"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Username: "alice01", Password: "other", Email: "c@d.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))

	// The original record is untouched.
	stored, err := userRepo.FindByUsername(ctx, "alice01")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", stored.Email)
}

func TestAuthService_Register_ValidationFailures(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()
	ctx := context.Background()

	tests := []struct {
		name       string
		req        RegisterRequest
		wantFields []string
	}{
		{
			name:       "short username",
			req:        RegisterRequest{Username: "bob1", Password: "secret", Email: "a@b.com"},
			wantFields: []string{"username"},
		},
		{
			name:       "empty password",
			req:        RegisterRequest{Username: "alice01", Password: "", Email: "a@b.com"},
			wantFields: []string{"password"},
		},
		{
			name:       "bad email",
			req:        RegisterRequest{Username: "alice01", Password: "secret", Email: "nope"},
			wantFields: []string{"email"},
		},
		{
			name:       "multiple violations all listed",
			req:        RegisterRequest{Username: "b!", Password: "", Email: "nope"},
			wantFields: []string{"username", "username", "password", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			require.Error(t, err)

			var vErr *common.ValidationError
			require.True(t, errors.As(err, &vErr))
			fields := make([]string, 0, len(vErr.Violations))
			for _, v := range vErr.Violations {
				fields = append(fields, v.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice01", Password: "secret", Email: "a@b.com"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Username: "alice01", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice01", resp.User.Username)
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	t.Parallel()

	svc, _, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice01", Password: "secret", Email: "a@b.com"})
	require.NoError(t, err)

	// Wrong password and unknown username fail identically, so the
	// response cannot be used for username enumeration.
	_, wrongPassErr := svc.Login(ctx, LoginRequest{Username: "alice01", Password: "wrong"})
	_, unknownUserErr := svc.Login(ctx, LoginRequest{Username: "nosuchuser", Password: "secret"})

	assert.True(t, errors.Is(wrongPassErr, common.ErrUnauthorized))
	assert.True(t, errors.Is(unknownUserErr, common.ErrUnauthorized))
	assert.Equal(t, wrongPassErr.Error(), unknownUserErr.Error())
}
