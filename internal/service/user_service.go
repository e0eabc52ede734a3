package service

import (
	"context"

	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/repository/specification"
	"namdo-bot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	GetPreferences(ctx context.Context, userId uuid.UUID) ([]dto.PreferenceResponse, error)
	SavePreference(ctx context.Context, userId uuid.UUID, req *dto.PreferenceRequest) (*dto.PreferenceResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) GetPreferences(ctx context.Context, userId uuid.UUID) ([]dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	prefs, err := uow.UserPreferenceRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "preference_type"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.PreferenceResponse, len(prefs))
	for i, p := range prefs {
		res[i] = toPreferenceResponse(p)
	}
	return res, nil
}

func (s *userService) SavePreference(ctx context.Context, userId uuid.UUID, req *dto.PreferenceRequest) (*dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	pref := &entity.UserPreference{
		UserId:          userId,
		PreferenceType:  req.PreferenceType,
		PreferenceValue: req.PreferenceValue,
	}
	if err := uow.UserPreferenceRepository().Upsert(ctx, pref); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	res := toPreferenceResponse(pref)
	return &res, nil
}

func toPreferenceResponse(p *entity.UserPreference) dto.PreferenceResponse {
	return dto.PreferenceResponse{
		Id:              p.Id,
		UserId:          p.UserId,
		PreferenceType:  p.PreferenceType,
		PreferenceValue: p.PreferenceValue,
		UpdatedAt:       p.UpdatedAt,
	}
}
