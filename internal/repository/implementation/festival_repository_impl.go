package implementation

import (
	"context"
	"errors"

	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/mapper"
	"namdo-bot-be/internal/model"
	"namdo-bot-be/internal/repository/contract"
	"namdo-bot-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FestivalRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FestivalMapper
}

func NewFestivalRepository(db *gorm.DB) contract.FestivalRepository {
	return &FestivalRepositoryImpl{
		db:     db,
		mapper: mapper.NewFestivalMapper(),
	}
}

func upsertByContentID(db *gorm.DB, value interface{}) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_id"}},
		UpdateAll: true,
	}).Omit(clause.Associations).Create(value).Error
}

func (r *FestivalRepositoryImpl) Upsert(ctx context.Context, festival *entity.Festival) error {
	if festival.Id == uuid.Nil {
		festival.Id = uuid.New()
	}
	db := r.db.WithContext(ctx)

	if err := upsertByContentID(db, r.mapper.ToModel(festival)); err != nil {
		return err
	}
	if festival.Detail != nil {
		if err := upsertByContentID(db, r.mapper.DetailToModel(festival.Detail)); err != nil {
			return err
		}
	}
	if festival.Intro != nil {
		if err := upsertByContentID(db, r.mapper.IntroToModel(festival.Intro)); err != nil {
			return err
		}
	}
	if festival.Pet != nil {
		if err := upsertByContentID(db, r.mapper.PetToModel(festival.Pet)); err != nil {
			return err
		}
	}
	return nil
}

func (r *FestivalRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Festival, error) {
	var m model.Festival
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FestivalRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Festival, error) {
	var models []*model.Festival
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FestivalRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Festival{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
