package impl

import (
	"context"
	"testing"
	"time"

	"tasknest/internal/domain/entity"
	domainerrors "tasknest/internal/domain/errors"
	"tasknest/internal/domain/repository"
	"tasknest/internal/domain/service"
	"tasknest/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountFixtures struct {
	service    usecase.AccountUsecase
	userRepo   *MockUserRepository
	hasher     *MockPasswordHasher
	tokens     *MockTokenService
	googleAuth *MockOAuthAuthService
}

func newAccountFixtures() accountFixtures {
	userRepo := new(MockUserRepository)
	hasher := new(MockPasswordHasher)
	tokens := new(MockTokenService)
	googleAuth := new(MockOAuthAuthService)

	svc := NewAccountService(AccountServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokens,
		GoogleAuth:   googleAuth,
		Logger:       newDiscardLogger(),
	})

	return accountFixtures{
		service:    svc,
		userRepo:   userRepo,
		hasher:     hasher,
		tokens:     tokens,
		googleAuth: googleAuth,
	}
}

func claimsExpiringIn(ttl time.Duration) *service.Claims {
	now := time.Now()

	return &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := newAccountFixtures()
	ctx := context.Background()

	input := &usecase.RegisterInput{
		UserName: "Ada",
		Email:    "a@x.com",
		Password: "Abcdef1!",
	}

	fx.userRepo.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", input.Password).Return("hashed", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = uuid.New()
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, input.UserName, output.User.UserName)
	assert.NotEqual(t, uuid.Nil, output.User.ID)
	fx.userRepo.AssertExpectations(t)
	fx.hasher.AssertExpectations(t)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := newAccountFixtures()
	ctx := context.Background()

	existing := &entity.User{ID: uuid.New(), Email: "a@x.com"}
	fx.userRepo.On("FindByEmail", ctx, "a@x.com").Return(existing, nil)

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{
		UserName: "Ada",
		Email:    "a@x.com",
		Password: "Abcdef1!",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAccountService_Register_LosesUniqueIndexRace(t *testing.T) {
	fx := newAccountFixtures()
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "a@x.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "Abcdef1!").Return("hashed", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(repository.ErrEmailTaken)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		UserName: "Ada",
		Email:    "a@x.com",
		Password: "Abcdef1!",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := newAccountFixtures()
	ctx := context.Background()

	user := &entity.User{
		ID:           uuid.New(),
		Name:         "Ada",
		Email:        "a@x.com",
		PasswordHash: "stored-hash",
	}

	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.hasher.On("Check", "Abcdef1!", "stored-hash").Return(true, nil)
	fx.tokens.On("IssueAccessToken", user.ID).Return("access-token", nil)
	fx.tokens.On("IssueRefreshToken", user.ID).Return("refresh-token", nil)
	fx.tokens.On("Decode", "access-token").Return(claimsExpiringIn(445*time.Second), nil)
	fx.tokens.On("Decode", "refresh-token").Return(claimsExpiringIn(60*time.Second), nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Abcdef1!"})

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Greater(t, output.AccessTokenExpiresAt, time.Now().Unix())
	assert.Greater(t, output.RefreshTokenExpiresAt, time.Now().Unix())
	assert.Equal(t, user.Email, output.User.Email)
	fx.tokens.AssertExpectations(t)
}

func TestAccountService_Login_UnknownAccount(t *testing.T) {
	fx := newAccountFixtures()
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "nobody@x.com").Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "nobody@x.com", Password: "Abcdef1!"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := newAccountFixtures()
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: "stored-hash"}
	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.hasher.On("Check", "Wrongpass1!", "stored-hash").Return(false, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Wrongpass1!"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	fx.tokens.AssertNotCalled(t, "IssueAccessToken", mock.Anything)
}

func TestAccountService_Login_OAuthOnlyAccount(t *testing.T) {
	fx := newAccountFixtures()
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "a@x.com"}
	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Abcdef1!"})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	fx.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestAccountService_GoogleSignIn_CreatesAccountOnFirstLogin(t *testing.T) {
	fx := newAccountFixtures()
	ctx := context.Background()

	fx.googleAuth.On("VerifyIDToken", ctx, "id-token").Return(&service.OAuthUser{
		ID:            "google-sub",
		Email:         "a@x.com",
		Name:          "Ada",
		EmailVerified: true,
	}, nil)
	fx.userRepo.On("FindByEmail", ctx, "a@x.com").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			assert.Empty(t, user.PasswordHash)
			user.ID = uuid.New()
		}).
		Return(nil)
	fx.tokens.On("IssueAccessToken", mock.AnythingOfType("uuid.UUID")).Return("access-token", nil)
	fx.tokens.On("IssueRefreshToken", mock.AnythingOfType("uuid.UUID")).Return("refresh-token", nil)
	fx.tokens.On("Decode", "access-token").Return(claimsExpiringIn(445*time.Second), nil)
	fx.tokens.On("Decode", "refresh-token").Return(claimsExpiringIn(60*time.Second), nil)

	output, err := fx.service.GoogleSignIn(ctx, &usecase.GoogleSignInInput{IDToken: "id-token"})

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", output.User.Email)
	fx.userRepo.AssertExpectations(t)
}

func TestAccountService_GoogleSignIn_ExistingAccount(t *testing.T) {
	fx := newAccountFixtures()
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Name: "Ada", Email: "a@x.com", PasswordHash: "stored-hash"}

	fx.googleAuth.On("VerifyIDToken", ctx, "id-token").Return(&service.OAuthUser{
		ID:    "google-sub",
		Email: user.Email,
		Name:  user.Name,
	}, nil)
	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.tokens.On("IssueAccessToken", user.ID).Return("access-token", nil)
	fx.tokens.On("IssueRefreshToken", user.ID).Return("refresh-token", nil)
	fx.tokens.On("Decode", "access-token").Return(claimsExpiringIn(445*time.Second), nil)
	fx.tokens.On("Decode", "refresh-token").Return(claimsExpiringIn(60*time.Second), nil)

	output, err := fx.service.GoogleSignIn(ctx, &usecase.GoogleSignInInput{IDToken: "id-token"})

	require.NoError(t, err)
	assert.Equal(t, user.ID, output.User.ID)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_GoogleSignIn_InvalidToken(t *testing.T) {
	fx := newAccountFixtures()
	ctx := context.Background()

	fx.googleAuth.On("VerifyIDToken", ctx, "bad-token").
		Return(nil, domainerrors.ErrOAuthTokenInvalid.WrapMessage("validation failed"))

	output, err := fx.service.GoogleSignIn(ctx, &usecase.GoogleSignInInput{IDToken: "bad-token"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrOAuthTokenInvalid))
}
