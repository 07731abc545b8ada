// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"tasknest/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Password rules mirror the public registration contract: at least eight
// characters with an uppercase letter, a digit, and a special character.
type RegisterInput struct {
	UserName string `json:"userName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ,containsany=0123456789,containsany=!@#$%^&*()_+-="`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleSignInInput carries the provider-issued ID token.
type GoogleSignInInput struct {
	IDToken string `json:"idToken" validate:"required"`
}

// --- Output DTOs ---

// UserView is the outward representation of an account. The password hash
// never crosses this boundary.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserView maps a domain user onto its outward representation.
func NewUserView(user *entity.User) *UserView {
	return &UserView{
		ID:        user.ID,
		UserName:  user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// RegisterOutput returns the newly created account.
type RegisterOutput struct {
	User *UserView `json:"user"`
}

// LoginOutput returns both session tokens, their expiry instants (unix
// seconds, decoded from the freshly issued tokens), and the account.
type LoginOutput struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  int64     `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt int64     `json:"refreshTokenExpiresAt"`
	User                  *UserView `json:"user"`
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	GoogleSignIn(ctx context.Context, input *GoogleSignInInput) (*LoginOutput, error)
}
