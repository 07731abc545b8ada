package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the signed claim set carried by both token kinds:
// the subject account ID plus issued-at and expiry from the registered set.
type Claims struct {
	UserID uuid.UUID `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the two bearer tokens of a session.
// Access and refresh tokens are independent artifacts: separate secrets,
// separate TTLs, never interchangeable at verification time. There is no
// server-side token state; expiry is the only invalidation mechanism.
type TokenService interface {
	// IssueAccessToken signs a short-lived access token for the given account.
	IssueAccessToken(userID uuid.UUID) (string, error)

	// IssueRefreshToken signs a refresh token for the given account.
	IssueRefreshToken(userID uuid.UUID) (string, error)

	// VerifyAccessToken validates signature and expiry against the access secret.
	VerifyAccessToken(token string) (*Claims, error)

	// VerifyRefreshToken validates signature and expiry against the refresh secret.
	VerifyRefreshToken(token string) (*Claims, error)

	// Decode parses claims without verifying the signature. Only safe for
	// tokens this service just issued (surfacing expiry metadata to the
	// caller); never an authorization decision.
	Decode(token string) (*Claims, error)
}
