package middleware

import (
	"log/slog"
	"strings"

	"tasknest/internal/delivery/http/response"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ContextUserIDKey is the echo context key carrying the authenticated
// account ID, set by Authenticate and read by task handlers.
const ContextUserIDKey = "userID"

// AuthMiddleware guards routes with JWT access token verification.
// Verification is purely cryptographic; no store lookup happens here.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger}
}

// Authenticate validates the bearer access token and stores the account ID
// on the context. Every rejection renders the same 401 envelope; the precise
// reason only reaches the logs.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c,
				domainerrors.ErrMissingToken.ErrorCode(),
				domainerrors.ErrMissingToken.Message())
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return response.Unauthorized(c,
				domainerrors.ErrMissingToken.ErrorCode(),
				"Authorization header must carry a Bearer token")
		}

		claims, err := m.tokenSvc.VerifyAccessToken(tokenString)
		if err != nil {
			m.logger.Debug("Access token rejected",
				slog.String("path", c.Request().URL.Path),
				slog.Any("error", err),
			)

			return response.Unauthorized(c,
				domainerrors.ErrMalformedToken.ErrorCode(),
				"Invalid or expired token")
		}

		c.Set(ContextUserIDKey, claims.UserID)

		return next(c)
	}
}
