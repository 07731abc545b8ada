// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tasknest/config"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/service"
	"tasknest/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and refresh tokens share nothing but the subject: distinct secrets,
// distinct lifetimes, no cryptographic link between the two.
type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     cfg.Auth.AccessTokenTTL,
		refreshTTL:    cfg.Auth.RefreshTokenTTL,
	}, nil
}

// IssueAccessToken signs a short-lived access token for the given account.
func (s *jwtService) IssueAccessToken(userID uuid.UUID) (string, error) {
	return s.issue(userID, s.accessTTL, s.accessSecret)
}

// IssueRefreshToken signs a refresh token for the given account.
func (s *jwtService) IssueRefreshToken(userID uuid.UUID) (string, error) {
	return s.issue(userID, s.refreshTTL, s.refreshSecret)
}

// VerifyAccessToken validates signature and expiry against the access secret.
func (s *jwtService) VerifyAccessToken(token string) (*service.Claims, error) {
	return s.verify(token, s.accessSecret)
}

// VerifyRefreshToken validates signature and expiry against the refresh secret.
func (s *jwtService) VerifyRefreshToken(token string) (*service.Claims, error) {
	return s.verify(token, s.refreshSecret)
}

// Decode parses claims without verifying the signature. Trusted only for
// tokens this service just issued.
func (s *jwtService) Decode(token string) (*service.Claims, error) {
	claims := &service.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, domainerrors.ErrMalformedToken.WrapMessage("token cannot be decoded")
	}

	return claims, nil
}

// issue creates a signed token encoding {id, iat = now, exp = now + ttl}.
func (s *jwtService) issue(userID uuid.UUID, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return token, nil
}

func (s *jwtService) verify(tokenString string, secret []byte) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Only HS256-family tokens are ever issued here.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return secret, nil
	})
	if err != nil {
		return nil, mapTokenError(err)
	}
	if !token.Valid {
		return nil, domainerrors.ErrInvalidSignature.WrapMessage("token rejected")
	}

	return claims, nil
}

// mapTokenError translates golang-jwt sentinel errors into the domain taxonomy.
// Callers that collapse these into a single unauthorized response still get
// distinct causes for logging and tests.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerrors.ErrTokenExpired.WrapMessage("token verification failed")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return domainerrors.ErrInvalidSignature.WrapMessage("token verification failed")
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domainerrors.ErrMalformedToken.WrapMessage("token verification failed")
	default:
		return domainerrors.ErrMalformedToken.WrapMessage(err.Error())
	}
}
