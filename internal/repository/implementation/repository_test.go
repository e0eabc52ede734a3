package implementation

import (
	"context"
	"testing"

	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/model"
	"namdo-bot-be/internal/repository/specification"
	"namdo-bot-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory(t.Name(), model.All()...)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{Username: "traveler", Email: "t@example.com", PasswordHash: "hash", IsActive: true}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.Id)

	found, err := repo.FindOne(ctx, specification.ByUsername{Username: "traveler"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.Id, found.Id)

	missing, err := repo.FindOne(ctx, specification.ByEmail{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	count, err := repo.Count(ctx, specification.ByEmail{Email: "t@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserPreferenceRepository_UpsertReplacesValue(t *testing.T) {
	db := setupDB(t)
	repo := NewUserPreferenceRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	first := &entity.UserPreference{UserId: userID, PreferenceType: "default_companion", PreferenceValue: "가족"}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &entity.UserPreference{UserId: userID, PreferenceType: "default_companion", PreferenceValue: "연인"}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.Id, second.Id)

	all, err := repo.FindAll(ctx, specification.UserOwnedBy{UserID: userID})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "연인", all[0].PreferenceValue)
}

func TestConversationMessageRepository_LastTurnNumber(t *testing.T) {
	db := setupDB(t)
	conversations := NewConversationRepository(db)
	messages := NewConversationMessageRepository(db)
	ctx := context.Background()

	conv := &entity.Conversation{
		SessionId:     uuid.NewString(),
		UserId:        uuid.New(),
		Phase:         "initial",
		Status:        entity.ConversationStatusActive,
		TravelPeriod:  "20251010",
		CompanionType: "친구",
	}
	require.NoError(t, conversations.Create(ctx, conv))

	last, err := messages.LastTurnNumber(ctx, conv.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, last)

	for i, role := range []string{entity.MessageRoleAssistant, entity.MessageRoleUser, entity.MessageRoleAssistant} {
		require.NoError(t, messages.Create(ctx, &entity.ConversationMessage{
			ConversationId: conv.Id,
			Role:           role,
			Content:        "msg",
			TurnNumber:     i + 1,
		}))
	}

	last, err = messages.LastTurnNumber(ctx, conv.Id)
	require.NoError(t, err)
	assert.Equal(t, 3, last)

	// turn numbers are unique per conversation
	err = messages.Create(ctx, &entity.ConversationMessage{ConversationId: conv.Id, Role: "user", Content: "dup", TurnNumber: 3})
	assert.Error(t, err)

	conv.Status = entity.ConversationStatusCompleted
	conv.FinalResult = []byte(`{"final_message":"ok"}`)
	require.NoError(t, conversations.Update(ctx, conv))

	stored, err := conversations.FindOne(ctx, specification.BySessionID{SessionID: conv.SessionId})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.ConversationStatusCompleted, stored.Status)
	assert.JSONEq(t, `{"final_message":"ok"}`, string(stored.FinalResult))
}

func TestFestivalRepository_UpsertAndFilters(t *testing.T) {
	db := setupDB(t)
	repo := NewFestivalRepository(db)
	ctx := context.Background()

	withPet := &entity.Festival{
		ContentId: "100", Title: "순천만 정원 축제", Region: "전라남도", StartDate: "20251101",
		Detail: &entity.FestivalDetail{ContentId: "100", Overview: "정원"},
		Pet:    &entity.PetInfo{ContentId: "100", AcmpyPsblCpam: "소형견"},
	}
	withoutPet := &entity.Festival{
		ContentId: "200", Title: "전주 비빔밥 축제", Region: "전북특별자치도", StartDate: "20250901",
	}
	require.NoError(t, repo.Upsert(ctx, withPet))
	require.NoError(t, repo.Upsert(ctx, withoutPet))

	// second sync updates in place
	withPet.Id = uuid.Nil
	withPet.Title = "순천만 국가정원 축제"
	withPet.Detail.Overview = "국가정원"
	require.NoError(t, repo.Upsert(ctx, withPet))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	got, err := repo.FindOne(ctx, specification.ByContentID{ContentID: "100"}, specification.WithDetails{})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "순천만 국가정원 축제", got.Title)
	require.NotNil(t, got.Detail)
	assert.Equal(t, "국가정원", got.Detail.Overview)
	require.NotNil(t, got.Pet)
	assert.Nil(t, got.Intro)

	upcoming, err := repo.FindAll(ctx, specification.StartingFrom{Period: "20251001"})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "100", upcoming[0].ContentId)

	pets, err := repo.FindAll(ctx, specification.PetFriendly{})
	require.NoError(t, err)
	require.Len(t, pets, 1)
	assert.Equal(t, "100", pets[0].ContentId)

	jeonbuk, err := repo.FindAll(ctx, specification.RegionLike{Region: "전북"})
	require.NoError(t, err)
	require.Len(t, jeonbuk, 1)
	assert.Equal(t, "200", jeonbuk[0].ContentId)

	keyword, err := repo.FindAll(ctx, specification.TitleOrAddressLike{Keyword: "비빔밥"})
	require.NoError(t, err)
	assert.Len(t, keyword, 1)
}
