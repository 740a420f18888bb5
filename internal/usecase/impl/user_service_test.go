package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userServiceFixtures struct {
	service      usecase.UserUsecase
	factory      *fakeRepositoryFactory
	tokenService *fakeTokenService
	publisher    *capturePublisher
	revocation   *fakeRevocationStore
}

func createTestUserService(t *testing.T) *userServiceFixtures {
	t.Helper()

	factory := newFakeRepositoryFactory()
	tokenService := newFakeTokenService()
	publisher := &capturePublisher{}
	revocation := newFakeRevocationStore()

	service := NewUserService(UserServiceParams{
		TxManager:        &fakeTxManager{factory: factory},
		UserRepo:         factory.users,
		RefreshTokenRepo: factory.refreshTokens,
		Hasher:           &fakeHasher{},
		TokenService:     tokenService,
		RevocationStore:  revocation,
		Publisher:        publisher,
		Logger:           testLogger(),
	})

	return &userServiceFixtures{
		service:      service,
		factory:      factory,
		tokenService: tokenService,
		publisher:    publisher,
		revocation:   revocation,
	}
}

func registerTestUser(t *testing.T, f *userServiceFixtures, email string) *entity.User {
	t.Helper()

	out, err := f.service.Register(context.Background(), &usecase.RegisterUserInput{
		Name:     "Test User",
		Email:    email,
		Password: "correct-horse",
	})
	require.NoError(t, err)

	return out.User
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates active customer with hashed password", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		user := registerTestUser(t, f, "Alice@Example.COM")

		assert.Equal(t, "Alice@example.com", user.Email)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsStaff)
		assert.False(t, user.IsSuperuser)
		assert.Equal(t, "hashed:correct-horse", user.PasswordHash)

		stored, err := f.factory.users.FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.True(t, stored.Roles.Contains(entity.RoleCustomer))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		registerTestUser(t, f, "bob@example.com")

		_, err := f.service.Register(context.Background(), &usecase.RegisterUserInput{
			Name:     "Other Bob",
			Email:    "bob@EXAMPLE.com",
			Password: "correct-horse",
		})
		require.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		_, err := f.service.Register(context.Background(), &usecase.RegisterUserInput{
			Name:     "Carol",
			Email:    "carol@example.com",
			Password: "short",
		})
		require.ErrorIs(t, err, domainerrors.ErrWeakPassword)
	})
}

func TestUserService_CreateSuperuser(t *testing.T) {
	t.Parallel()

	f := createTestUserService(t)
	out, err := f.service.CreateSuperuser(context.Background(), &usecase.CreateSuperuserInput{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.True(t, out.User.IsStaff)
	assert.True(t, out.User.IsSuperuser)

	stored, err := f.factory.users.FindByID(context.Background(), out.User.ID)
	require.NoError(t, err)
	assert.True(t, stored.Roles.Contains(entity.RoleAdmin))
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	t.Run("issues token pair and records the session", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		user := registerTestUser(t, f, "alice@example.com")

		out, err := f.service.Login(context.Background(), &usecase.LoginInput{
			Email:    "alice@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, out.AccessToken)
		assert.NotEmpty(t, out.RefreshToken)
		assert.Equal(t, user.ID, out.User.ID)

		stored, err := f.factory.refreshTokens.FindByHash(
			context.Background(), f.tokenService.HashToken(out.RefreshToken))
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.UserID)

		assert.Equal(t, []string{entity.ActionUserLoggedIn}, f.publisher.actions())
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		registerTestUser(t, f, "alice@example.com")

		_, err := f.service.Login(context.Background(), &usecase.LoginInput{
			Email:    "alice@example.com",
			Password: "wrong",
		})
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		assert.Empty(t, f.publisher.actions())
	})

	t.Run("rejects unknown email with the same error", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		_, err := f.service.Login(context.Background(), &usecase.LoginInput{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("rejects inactive account", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		user := registerTestUser(t, f, "alice@example.com")
		user.IsActive = false
		require.NoError(t, f.factory.users.Update(context.Background(), user))

		_, err := f.service.Login(context.Background(), &usecase.LoginInput{
			Email:    "alice@example.com",
			Password: "correct-horse",
		})
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestUserService_RefreshToken(t *testing.T) {
	t.Parallel()

	login := func(t *testing.T, f *userServiceFixtures) *usecase.LoginOutput {
		t.Helper()
		registerTestUser(t, f, "alice@example.com")
		out, err := f.service.Login(context.Background(), &usecase.LoginInput{
			Email:    "alice@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)

		return out
	}

	t.Run("rotates the session", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		session := login(t, f)

		out, err := f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
			RefreshToken: session.RefreshToken,
		})
		require.NoError(t, err)
		assert.NotEqual(t, session.RefreshToken, out.RefreshToken)

		// The rotated-out token no longer identifies a session.
		_, err = f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
			RefreshToken: session.RefreshToken,
		})
		require.ErrorIs(t, err, domainerrors.ErrInvalidToken)

		// The replacement token does.
		_, err = f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
			RefreshToken: out.RefreshToken,
		})
		require.NoError(t, err)
	})

	t.Run("rejects an access token presented as refresh", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		session := login(t, f)

		_, err := f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
			RefreshToken: session.AccessToken,
		})
		require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	})

	t.Run("rejects a revoked token", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		session := login(t, f)
		require.NoError(t, f.service.Logout(context.Background(), &usecase.LogoutInput{
			RefreshToken: session.RefreshToken,
		}))

		_, err := f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
			RefreshToken: session.RefreshToken,
		})
		require.ErrorIs(t, err, domainerrors.ErrTokenRevoked)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		_, err := f.service.RefreshToken(context.Background(), &usecase.RefreshTokenInput{
			RefreshToken: "not-a-token",
		})
		require.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	})
}

func TestUserService_Logout(t *testing.T) {
	t.Parallel()

	f := createTestUserService(t)
	registerTestUser(t, f, "alice@example.com")
	session, err := f.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), &usecase.LogoutInput{
		RefreshToken: session.RefreshToken,
	}))

	// Session row gone and jti denylisted.
	hash := f.tokenService.HashToken(session.RefreshToken)
	_, err = f.factory.refreshTokens.FindByHash(context.Background(), hash)
	require.Error(t, err)

	claims, err := f.tokenService.ValidateToken(session.RefreshToken)
	require.NoError(t, err)
	revoked, err := f.revocation.IsRevoked(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	// Logging out twice is a no-op.
	require.NoError(t, f.service.Logout(context.Background(), &usecase.LogoutInput{
		RefreshToken: session.RefreshToken,
	}))
}

func TestUserService_UpdateMe(t *testing.T) {
	t.Parallel()

	t.Run("updates name and publishes audit event", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		user := registerTestUser(t, f, "alice@example.com")

		newName := "Alice Renamed"
		updated, err := f.service.UpdateMe(context.Background(), &usecase.UpdateMeInput{
			UserID: user.ID,
			Name:   &newName,
		})
		require.NoError(t, err)
		assert.Equal(t, newName, updated.Name)
		assert.Contains(t, f.publisher.actions(), entity.ActionUserUpdated)
	})

	t.Run("rehashes a changed password", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		user := registerTestUser(t, f, "alice@example.com")

		newPassword := "even-better-horse"
		_, err := f.service.UpdateMe(context.Background(), &usecase.UpdateMeInput{
			UserID:   user.ID,
			Password: &newPassword,
		})
		require.NoError(t, err)

		_, err = f.service.Login(context.Background(), &usecase.LoginInput{
			Email:    "alice@example.com",
			Password: newPassword,
		})
		require.NoError(t, err)
	})

	t.Run("rejects a weak replacement password", func(t *testing.T) {
		t.Parallel()

		f := createTestUserService(t)
		user := registerTestUser(t, f, "alice@example.com")

		weak := "short"
		_, err := f.service.UpdateMe(context.Background(), &usecase.UpdateMeInput{
			UserID:   user.ID,
			Password: &weak,
		})
		require.ErrorIs(t, err, domainerrors.ErrWeakPassword)
	})
}

func TestUserService_GetMe(t *testing.T) {
	t.Parallel()

	f := createTestUserService(t)
	user := registerTestUser(t, f, "alice@example.com")

	got, err := f.service.GetMe(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.True(t, got.Roles.Contains(entity.RoleCustomer))
}
