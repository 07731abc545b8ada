package service

import "context"

// OAuthUser is the verified identity returned by an external provider.
type OAuthUser struct {
	ID            string // Provider-specific user ID (e.g., Google's 'sub' claim)
	Email         string // User's email address
	Name          string // User's display name
	AvatarURL     string // URL to user's profile picture
	EmailVerified bool   // Whether the email is verified by the provider
}

// OAuthAuthService verifies provider-issued ID tokens. The federation flow
// itself (consent screen, code exchange) happens client-side; the service
// only ever sees the resulting ID token.
type OAuthAuthService interface {
	// VerifyIDToken verifies an OAuth ID token and returns the verified identity.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)
}
