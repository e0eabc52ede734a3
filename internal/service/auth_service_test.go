package service

import (
	"context"
	"testing"
	"time"

	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/internal/repository/specification"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAuthService_RegisterAndLogin(t *testing.T) {
	factory := setupFactory(t)
	svc := NewAuthService(factory, testSecret, 30*time.Minute, logger.NewNopLogger())
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "namdo",
		Email:    "Namdo@Example.com",
		Password: "secret123",
		FullName: "남도 여행자",
	})
	require.NoError(t, err)
	assert.Equal(t, "namdo@example.com", user.Email)
	assert.True(t, user.IsActive)

	token, err := svc.Login(ctx, &dto.TokenRequest{Username: "namdo", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, 1800, token.ExpiresIn)

	parsed, err := jwt.Parse(token.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "namdo", claims["sub"])
	assert.Equal(t, user.Id.String(), claims["user_id"])
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	factory := setupFactory(t)
	svc := NewAuthService(factory, testSecret, time.Hour, logger.NewNopLogger())
	ctx := context.Background()

	req := &dto.RegisterRequest{Username: "namdo", Email: "a@example.com", Password: "secret123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "namdo", Email: "b@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Username: "other", Email: "A@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.EqualError(t, err, "이미 등록된 이메일입니다.")
}

func TestAuthService_LoginFailures(t *testing.T) {
	factory := setupFactory(t)
	svc := NewAuthService(factory, testSecret, time.Hour, logger.NewNopLogger())
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Username: "namdo", Email: "a@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.TokenRequest{Username: "namdo", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.TokenRequest{Username: "ghost", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	uow := factory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: "namdo"})
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, uow.UserRepository().Update(ctx, user))

	_, err = svc.Login(ctx, &dto.TokenRequest{Username: "namdo", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInactiveUser)
}
