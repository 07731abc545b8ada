// Package google verifies Google-issued ID tokens against the configured client ID.
package google

import (
	"context"
	"log/slog"

	"google.golang.org/api/idtoken"

	"tasknest/config"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/service"
	"tasknest/internal/errors"
)

// authService implements service.OAuthAuthService for Google Sign-In.
// The client completes the consent flow and posts the resulting ID token;
// this service only ever validates that token.
type authService struct {
	clientID string
	logger   *slog.Logger
}

// NewAuthService is the constructor for the Google ID-token verifier.
func NewAuthService(cfg *config.Config, logger *slog.Logger) (service.OAuthAuthService, error) {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil, errors.New("google oauth client id must be provided")
	}

	return &authService{
		clientID: cfg.GoogleOAuth.ClientID,
		logger:   logger,
	}, nil
}

// VerifyIDToken validates the token's signature, audience, and expiry with
// Google's public keys and returns the verified identity.
func (s *authService) VerifyIDToken(ctx context.Context, rawToken string) (*service.OAuthUser, error) {
	payload, err := idtoken.Validate(ctx, rawToken, s.clientID)
	if err != nil {
		s.logger.Warn("Google ID token validation failed", slog.Any("error", err))

		return nil, domainerrors.ErrOAuthTokenInvalid.WrapMessage("google id token validation failed")
	}

	oauthUser := oauthUserFromPayload(payload.Subject, payload.Claims)

	s.logger.Debug("Google ID token verified",
		slog.String("subject", oauthUser.ID),
		slog.String("email", oauthUser.Email))

	return oauthUser, nil
}

// oauthUserFromPayload maps the validated claim set onto the provider-neutral identity.
func oauthUserFromPayload(subject string, claims map[string]any) *service.OAuthUser {
	user := &service.OAuthUser{ID: subject}

	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		user.EmailVerified = verified
	}
	if name, ok := claims["name"].(string); ok {
		user.Name = name
	}
	if picture, ok := claims["picture"].(string); ok {
		user.AvatarURL = picture
	}

	return user
}
