// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/domain/service"
	"tasknest/internal/errors"
	"tasknest/internal/usecase"

	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	googleAuth   service.OAuthAuthService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	GoogleAuth   service.OAuthAuthService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		googleAuth:   params.GoogleAuth,
		logger:       params.Logger,
	}
}

// Register creates a new password-backed account.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.logger.Info("Starting registration", slog.String("email", input.Email))

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		srv.logger.Warn("Registration rejected, email taken", slog.String("email", input.Email))

		return nil, domainerrors.ErrEmailTaken.WrapMessage("email already registered")
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing account")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	newUser := &entity.User{
		Name:         input.UserName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		// A concurrent registration may win the unique index race.
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.logger.Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: usecase.NewUserView(newUser)}, nil
}

// Login verifies the credentials and issues the session token pair.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.logger.Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Warn("Login failed, unknown account", slog.String("email", input.Email))

			return nil, domainerrors.ErrUserNotFound.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// OAuth-only accounts have no password to compare against.
	if !user.HasPassword() {
		srv.logger.Warn("Login failed, account has no password", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	ok, err := srv.hasher.Check(input.Password, user.PasswordHash)
	if err != nil {
		srv.logger.Error("Stored password hash is unusable", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to compare password")
	}
	if !ok {
		srv.logger.Warn("Login failed, password mismatch", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	output, err := srv.openSession(user)
	if err != nil {
		return nil, err
	}

	srv.logger.Debug("User logged in", slog.Any("userID", user.ID))

	return output, nil
}

// GoogleSignIn verifies the provider token and upserts the account by email.
// First sign-in creates the account with no password hash.
func (srv *accountService) GoogleSignIn(ctx context.Context, input *usecase.GoogleSignInInput) (*usecase.LoginOutput, error) {
	srv.logger.Info("Handling Google sign-in")

	oauthUser, err := srv.googleAuth.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify Google ID token")
	}
	if oauthUser.Email == "" {
		return nil, domainerrors.ErrOAuthTokenInvalid.WrapMessage("identity token carries no email")
	}

	user, err := srv.userRepo.FindByEmail(ctx, oauthUser.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		user = &entity.User{
			Name:  oauthUser.Name,
			Email: oauthUser.Email,
		}
		if createErr := srv.userRepo.Create(ctx, user); createErr != nil {
			return nil, errors.Wrap(createErr, "failed to create account from Google identity")
		}
		srv.logger.Info("Created account from Google identity", slog.Any("userID", user.ID))
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to load account for Google sign-in")
	}

	output, err := srv.openSession(user)
	if err != nil {
		return nil, err
	}

	srv.logger.Debug("Google sign-in completed", slog.Any("userID", user.ID))

	return output, nil
}

// openSession issues both tokens for the account and decodes their expiry
// claims. Decoding without verification is safe here: the tokens were signed
// a moment ago by this process.
func (srv *accountService) openSession(user *entity.User) (*usecase.LoginOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(user.ID)
	if err != nil {
		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage("failed to issue refresh token")
	}

	accessClaims, err := srv.tokenService.Decode(accessToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode access token")
	}
	refreshClaims, err := srv.tokenService.Decode(refreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode refresh token")
	}

	return &usecase.LoginOutput{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessClaims.ExpiresAt.Unix(),
		RefreshTokenExpiresAt: refreshClaims.ExpiresAt.Unix(),
		User:                  usecase.NewUserView(user),
	}, nil
}
