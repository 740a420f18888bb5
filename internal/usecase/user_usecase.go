// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// CreateSuperuserInput defines the data required to create a superuser
// account. Used by the seeding path, never exposed over HTTP.
type CreateSuperuserInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
	RequestID string
}

// RefreshTokenInput carries the raw refresh token presented for rotation.
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput carries the raw refresh token of the session to end.
type LogoutInput struct {
	RefreshToken string
}

// UpdateMeInput defines the self-service account mutation. Nil fields are
// left unchanged.
type UpdateMeInput struct {
	UserID    uuid.UUID
	Name      *string
	Password  *string
	IPAddress string
	RequestID string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshTokenOutput returns the rotated token pair.
type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	CreateSuperuser(ctx context.Context, input *CreateSuperuserInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateMe(ctx context.Context, input *UpdateMeInput) (*entity.User, error)
}
