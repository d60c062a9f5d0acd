package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prasitsang/stockroom-api/internal/model"
	"github.com/prasitsang/stockroom-api/internal/repository/memory"
	"github.com/prasitsang/stockroom-api/shared/auth"
)

func newAccountFixture() (AccountUsecase, *memory.UserRepository, auth.JWTAuthenticator) {
	userRepo := memory.NewUserRepository()
	jwtAuth := auth.NewJWTAuthenticator("test-secret", "stockroom-api", 24*time.Hour)

	return NewAccountUsecase(userRepo, jwtAuth), userRepo, jwtAuth
}

func TestRegister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	accountUC, userRepo, jwtAuth := newAccountFixture()

	user, credential, err := accountUC.Register(ctx, RegisterParams{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "ann@x.com", user.Email)
	assert.Equal(t, model.DefaultPhotoURL, user.Photo.URL)
	assert.Equal(t, model.DefaultPhone, user.Phone)
	assert.Equal(t, model.DefaultBio, user.Bio)

	// The stored password is a hash, never the plaintext.
	stored, err := userRepo.GetUser(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)

	userID, err := jwtAuth.Verify(credential)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), userID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	accountUC, _, _ := newAccountFixture()

	_, _, err := accountUC.Register(ctx, RegisterParams{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = accountUC.Register(ctx, RegisterParams{Name: "Bob", Email: "ann@x.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	accountUC, _, _ := newAccountFixture()

	_, _, err := accountUC.Register(ctx, RegisterParams{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "correct credentials", email: "ann@x.com", password: "secret1", wantErr: nil},
		{name: "wrong password", email: "ann@x.com", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "bob@x.com", password: "secret1", wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, credential, err := accountUC.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)
			assert.NotEmpty(t, credential)
		})
	}
}

func TestUpdateProfile_PartialMerge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	accountUC, _, _ := newAccountFixture()

	user, _, err := accountUC.Register(ctx, RegisterParams{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	bio := "gardener and part-time potter"
	updated, err := accountUC.UpdateProfile(ctx, user.ID.Hex(), UpdateProfileParams{Bio: &bio})
	require.NoError(t, err)

	// Only bio changes; everything else is retained.
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, "Ann", updated.Name)
	assert.Equal(t, model.DefaultPhone, updated.Phone)
	assert.Equal(t, model.DefaultPhotoURL, updated.Photo.URL)
	assert.Equal(t, "ann@x.com", updated.Email)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	t.Parallel()

	accountUC, _, _ := newAccountFixture()

	name := "Ghost"
	_, err := accountUC.UpdateProfile(context.Background(), "ffffffffffffffffffffffff", UpdateProfileParams{Name: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	accountUC, _, _ := newAccountFixture()

	user, _, err := accountUC.Register(ctx, RegisterParams{Name: "Ann", Email: "ann@x.com", Password: "secret1"})
	require.NoError(t, err)

	err = accountUC.ChangePassword(ctx, user.ID.Hex(), "wrong", "newsecret")
	assert.ErrorIs(t, err, ErrWrongOldPassword)

	err = accountUC.ChangePassword(ctx, user.ID.Hex(), "secret1", "newsecret")
	require.NoError(t, err)

	// The old password no longer logs in, the new one does.
	_, _, err = accountUC.Login(ctx, "ann@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = accountUC.Login(ctx, "ann@x.com", "newsecret")
	assert.NoError(t, err)
}
