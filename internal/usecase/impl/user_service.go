// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultPasswordMinLength = 8

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	revocationStore   service.TokenRevocationStore
	publisher         service.EventPublisher
	passwordMinLength int
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	RevocationStore  service.TokenRevocationStore
	Publisher        service.EventPublisher
	Config           *config.Config
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	passwordMinLength := defaultPasswordMinLength
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.PasswordMinLength > 0 {
		passwordMinLength = params.Config.Auth.PasswordMinLength
	}

	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		revocationStore:   params.RevocationStore,
		publisher:         params.Publisher,
		passwordMinLength: passwordMinLength,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// publishAudit publishes an audit event best-effort. A failed publish is
// logged and swallowed; it never affects the triggering mutation.
func (srv *userService) publishAudit(ctx context.Context, userID uuid.UUID, action, ip, requestID string) {
	event := &service.AuditEvent{
		RequestID:  requestID,
		UserID:     userID.String(),
		Action:     action,
		IPAddress:  ip,
		OccurredAt: time.Now().UTC(),
	}

	if err := srv.publisher.PublishAuditEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish audit event",
			slog.String("action", action),
			slog.Any("userID", userID),
			slog.Any("error", err),
		)
	}
}

func (srv *userService) validatePassword(password string) error {
	if len(password) < srv.passwordMinLength {
		return domainerrors.ErrWeakPassword
	}

	return nil
}

// Register orchestrates the complete user registration process. New accounts
// start active with the customer role.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	return srv.executeRegistration(ctx, input.Name, input.Email, input.Password, entity.RoleCustomer, false)
}

// CreateSuperuser creates a staff superuser carrying the admin role. Used by
// the seeding path only.
func (srv *userService) CreateSuperuser(ctx context.Context, input *usecase.CreateSuperuserInput) (*usecase.RegisterOutput, error) {
	return srv.executeRegistration(ctx, input.Name, input.Email, input.Password, entity.RoleAdmin, true)
}

func (srv *userService) executeRegistration(ctx context.Context, name, email, password string, role entity.Role, superuser bool) (*usecase.RegisterOutput, error) {
	email = util.NormalizeEmail(email)
	srv.log(ctx).Info("Starting registration", slog.Any("role", role), slog.String("email", email))

	if err := srv.validatePassword(password); err != nil {
		srv.log(ctx).Warn("Password below policy length", slog.String("email", email))

		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		IsStaff:      superuser,
		IsSuperuser:  superuser,
		Roles:        entity.Roles{role},
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		roleRepo := repoFactory.RoleRepo()

		_, findErr := userRepo.FindByEmail(ctx, email)
		if findErr == nil {
			return domainerrors.ErrDuplicateEmail
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing email")
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		if err := roleRepo.EnsureRole(ctx, role); err != nil {
			return errors.Wrap(err, "failed to ensure role during registration")
		}
		if err := roleRepo.AssignRole(ctx, newUser.ID, role); err != nil {
			return errors.Wrap(err, "failed to assign role during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("role", role), slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login orchestrates the user login process.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := util.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !user.IsActive {
		srv.log(ctx).Warn("Login attempt on inactive account", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	// bcrypt comparison is constant-time for equal-cost hashes.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, refreshTokenString, refreshTokenID, err := srv.tokenService.GenerateTokens(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.storeRefreshToken(ctx, srv.refreshTokenRepo, refreshTokenID, user.ID, refreshTokenString); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token during login")
	}

	srv.publishAudit(ctx, user.ID, entity.ActionUserLoggedIn, input.IPAddress, input.RequestID)
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         user,
	}, nil
}

// RefreshToken rotates a refresh token: the presented token's stored hash is
// deleted and a fresh pair is issued. A token that is unknown, expired or
// revoked is rejected outright.
func (srv *userService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	srv.log(ctx).Debug("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateToken(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken
	}
	if claims.Type != service.TokenTypeRefresh {
		return nil, domainerrors.ErrInvalidToken
	}

	revoked, err := srv.revocationStore.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check token revocation")
	}
	if revoked {
		return nil, domainerrors.ErrTokenRevoked
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)

	var output *usecase.RefreshTokenOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()
		userRepo := repoFactory.UserRepo()

		stored, findErr := refreshRepo.FindByHash(ctx, tokenHash)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrInvalidToken
			}

			return errors.Wrap(findErr, "failed to find refresh token")
		}

		if stored.Expired(time.Now()) {
			// Remove the dead row; the session is over either way.
			_ = refreshRepo.DeleteByHash(ctx, tokenHash)

			return domainerrors.ErrInvalidToken
		}

		user, findUserErr := userRepo.FindByID(ctx, stored.UserID)
		if findUserErr != nil {
			return errors.Wrap(findUserErr, "failed to find user for token refresh")
		}
		if !user.IsActive {
			return domainerrors.ErrInvalidToken
		}

		if err := refreshRepo.DeleteByHash(ctx, tokenHash); err != nil {
			return errors.Wrap(err, "failed to delete rotated refresh token")
		}

		accessToken, newRefreshString, newRefreshID, genErr := srv.tokenService.GenerateTokens(user)
		if genErr != nil {
			return errors.Wrap(genErr, "failed to generate rotated tokens")
		}

		if err := srv.storeRefreshToken(ctx, refreshRepo, newRefreshID, user.ID, newRefreshString); err != nil {
			return errors.Wrap(err, "failed to store rotated refresh token")
		}

		output = &usecase.RefreshTokenOutput{
			AccessToken:  accessToken,
			RefreshToken: newRefreshString,
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Token refresh failed", slog.Any("error", err))

		return nil, err
	}

	return output, nil
}

// Logout ends the session identified by the refresh token: the stored hash is
// deleted and the token's jti is denylisted for its remaining lifetime.
func (srv *userService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	srv.log(ctx).Debug("Attempting to log out")

	claims, err := srv.tokenService.ValidateToken(input.RefreshToken)
	if err != nil {
		// Logout stays idempotent: the session row is removed regardless.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)
	if err := srv.refreshTokenRepo.DeleteByHash(ctx, tokenHash); err != nil {
		if !errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return errors.Wrap(err, "failed to delete refresh token")
		}
	}

	if claims != nil && claims.ID != "" {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := srv.revocationStore.Revoke(ctx, claims.ID, ttl); err != nil {
			srv.log(ctx).Warn("Failed to denylist token", slog.Any("error", err))
		}
	}

	srv.log(ctx).Debug("Successfully logged out")

	return nil
}

// GetMe returns the caller's account with roles and profile resolved.
func (srv *userService) GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load account")
	}

	return user, nil
}

// UpdateMe applies the self-service account mutation and emits the account
// updated audit event.
func (srv *userService) UpdateMe(ctx context.Context, input *usecase.UpdateMeInput) (*entity.User, error) {
	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to load account for update")
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Password != nil {
			if err := srv.validatePassword(*input.Password); err != nil {
				return err
			}

			hashed, hashErr := srv.hasher.Hash(*input.Password)
			if hashErr != nil {
				return errors.Wrap(hashErr, "failed to hash new password")
			}
			user.PasswordHash = hashed
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update account")
		}
		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account update failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, err
	}

	srv.publishAudit(ctx, updated.ID, entity.ActionUserUpdated, input.IPAddress, input.RequestID)

	return updated, nil
}

func (srv *userService) storeRefreshToken(ctx context.Context, refreshRepo repository.RefreshTokenRepository, tokenID, userID uuid.UUID, refreshTokenString string) error {
	newRefreshToken := &entity.RefreshToken{
		ID:        tokenID,
		UserID:    userID,
		TokenHash: srv.tokenService.HashToken(refreshTokenString),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}

	if err := refreshRepo.Create(ctx, newRefreshToken); err != nil {
		return errors.Wrap(err, "failed to store refresh token")
	}

	return nil
}
