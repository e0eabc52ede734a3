package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/internal/repository/specification"
	"namdo-bot-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error)
}

type authService struct {
	uowFactory  unitofwork.RepositoryFactory
	secret      string
	tokenExpiry time.Duration
	logger      logger.ILogger
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, secret string, tokenExpiry time.Duration, log logger.ILogger) IAuthService {
	return &authService{
		uowFactory:  uowFactory,
		secret:      secret,
		tokenExpiry: tokenExpiry,
		logger:      log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := uow.UserRepository().Count(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrUsernameTaken
	}
	taken, err = uow.UserRepository().Count(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:       username,
		Email:          email,
		PasswordHash:   string(hash),
		FullName:       req.FullName,
		ProfilePicture: req.ProfilePicture,
		IsActive:       true,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User registered", map[string]interface{}{"user_id": user.Id.String(), "username": user.Username})
	return toUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: strings.TrimSpace(req.Username)})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	claims := jwt.MapClaims{
		"sub":     user.Username,
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(s.tokenExpiry).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokenExpiry.Seconds()),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:             u.Id,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		ProfilePicture: u.ProfilePicture,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}
