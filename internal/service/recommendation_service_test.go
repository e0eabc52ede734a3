package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/internal/repository/memory"
	"namdo-bot-be/internal/repository/specification"
	"namdo-bot-be/internal/repository/unitofwork"
	"namdo-bot-be/pkg/conversation"
	"namdo-bot-be/pkg/events"
	"namdo-bot-be/pkg/llm/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCompletedConversation(t *testing.T, f unitofwork.RepositoryFactory, userID uuid.UUID, status entity.ConversationStatus) *entity.Conversation {
	t.Helper()
	ctx := context.Background()
	conv := &entity.Conversation{
		SessionId:              uuid.NewString(),
		UserId:                 userID,
		Phase:                  string(conversation.PhaseCompleted),
		Status:                 status,
		TravelPeriod:           "202510",
		CompanionType:          "부모님 동반 가족",
		EnergyPreference:       conversation.OptionRelaxing,
		InterestFocus:          conversation.OptionFood,
		AdditionalRequirements: conversation.OptionFlatWalk,
	}
	uow := f.NewUnitOfWork(ctx)
	require.NoError(t, uow.ConversationRepository().Create(ctx, conv))
	for turn := 1; turn <= 9; turn++ {
		role := entity.MessageRoleAssistant
		if turn%2 == 0 {
			role = entity.MessageRoleUser
		}
		require.NoError(t, uow.ConversationMessageRepository().Create(ctx, &entity.ConversationMessage{
			ConversationId: conv.Id, Role: role, Content: "msg", TurnNumber: turn,
		}))
	}
	return conv
}

func namdoFestivals() []*entity.Festival {
	return []*entity.Festival{
		{
			ContentId: "F1", Title: "남도음식문화큰잔치", Region: "전남", Addr1: "전남 순천시",
			StartDate: "20251010", EndDate: "20251012", FestivalType: "음식/특산물", ProgressType: "평지형",
			Tel: "061-000-0000",
			Detail: &entity.FestivalDetail{ContentId: "F1", Overview: "남도의 맛을 한자리에서"},
		},
		{
			ContentId: "F2", Title: "광주 충장축제", Region: "광주", Addr1: "광주 동구",
			StartDate: "20251101", EndDate: "20251103", FestivalType: "문화", ProgressType: "평지",
		},
		{
			ContentId: "F3", Title: "서울 빛초롱", Region: "서울", Addr1: "서울 중구",
			StartDate: "20251201", EndDate: "20251215", FestivalType: "문화", ProgressType: "산책",
		},
		{
			ContentId: "F4", Title: "지난 축제", Region: "전라남도", Addr1: "전남 목포시",
			StartDate: "20250901", EndDate: "20250903", FestivalType: "음식", ProgressType: "평지",
		},
	}
}

type recommendationFixture struct {
	svc     *recommendationService
	factory unitofwork.RepositoryFactory
	llm     *fake.Provider
	events  *recordingEvents
	userID  uuid.UUID
}

func newRecommendationFixture(t *testing.T, responses ...string) *recommendationFixture {
	t.Helper()
	factory := setupFactory(t)
	user := seedUser(t, factory, "recommend")
	seedFestivals(t, factory, namdoFestivals()...)

	provider := fake.NewProvider(responses...)
	evts := &recordingEvents{}
	svc := NewRecommendationService(factory, provider, memory.NewRecommendationCache(), evts, logger.NewNopLogger()).(*recommendationService)
	svc.now = func() time.Time { return time.Date(2025, 9, 20, 9, 0, 0, 0, time.UTC) }
	return &recommendationFixture{svc: svc, factory: factory, llm: provider, events: evts, userID: user.Id}
}

func TestRecommendationService_GetRecommendations(t *testing.T) {
	fx := newRecommendationFixture(t, `{"explanations": {"F1": "부모님과 여유롭게 남도 음식을 즐기기 좋아요."}}`)
	conv := seedCompletedConversation(t, fx.factory, fx.userID, entity.ConversationStatusCompleted)

	res, err := fx.svc.GetRecommendations(context.Background(), fx.userID, conv.SessionId)
	require.NoError(t, err)

	require.Len(t, res.Recommendations, 2)
	top := res.Recommendations[0]
	assert.Equal(t, "F1", top.ContentId)
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, 85, top.Score)
	assert.Equal(t, 85, top.ScoreBreakdown.TotalScore)
	assert.Equal(t, "남도의 맛을 한자리에서", top.Description)
	assert.Equal(t, "부모님과 여유롭게 남도 음식을 즐기기 좋아요.", top.XAIExplanation)

	second := res.Recommendations[1]
	assert.Equal(t, "F2", second.ContentId)
	assert.Equal(t, 45, second.Score)
	assert.Contains(t, second.XAIExplanation, "45점")

	assert.Equal(t, "202510 여행", res.ConversationSummary)
	assert.Equal(t, 9, res.TotalTurns)

	require.Len(t, fx.llm.Options, 1)
	assert.Equal(t, explainMaxTokens, fx.llm.Options[0].MaxTokens)
	assert.True(t, fx.llm.Options[0].JSON)
}

func TestRecommendationService_RequiresCompletedConversation(t *testing.T) {
	fx := newRecommendationFixture(t, `{}`)
	conv := seedCompletedConversation(t, fx.factory, fx.userID, entity.ConversationStatusActive)

	_, err := fx.svc.GetRecommendations(context.Background(), fx.userID, conv.SessionId)
	assert.ErrorIs(t, err, ErrConversationNotCompleted)

	_, err = fx.svc.Finalize(context.Background(), fx.userID, conv.SessionId)
	assert.ErrorIs(t, err, ErrConversationNotCompleted)

	_, err = fx.svc.Finalize(context.Background(), uuid.New(), conv.SessionId)
	assert.ErrorIs(t, err, ErrSessionForbidden)
}

func TestRecommendationService_FinalizeFallsBackWhenModelFails(t *testing.T) {
	fx := newRecommendationFixture(t)
	fx.llm.Err = errors.New("model offline")
	conv := seedCompletedConversation(t, fx.factory, fx.userID, entity.ConversationStatusCompleted)
	ctx := context.Background()

	res, err := fx.svc.Finalize(ctx, fx.userID, conv.SessionId)
	require.NoError(t, err)

	require.NotNil(t, res.TopRecommendation)
	assert.Equal(t, "남도음식문화큰잔치", res.TopRecommendation.Title)
	assert.Equal(t, 85, res.TopRecommendation.Score)
	assert.Equal(t, "061-000-0000", res.TopRecommendation.Tel)
	assert.NotEmpty(t, res.TopRecommendation.WhyBest)
	require.Len(t, res.AlternativeRecommendations, 1)
	assert.Equal(t, 2, res.AlternativeRecommendations[0].Rank)
	assert.Contains(t, res.UserProfileSummary, "부모님 동반 가족")
	assert.Equal(t, "2025-09-20T09:00:00Z", res.Timestamp)

	stored, err := fx.factory.NewUnitOfWork(ctx).ConversationRepository().FindOne(ctx,
		specification.BySessionID{SessionID: conv.SessionId})
	require.NoError(t, err)
	assert.NotEmpty(t, stored.FinalResult)

	assert.Equal(t, []string{events.TypeRecommendationServed}, fx.events.types())
}

func TestRecommendationService_FinalizeUsesModelAndCache(t *testing.T) {
	fx := newRecommendationFixture(t, "```json\n"+`{
		"user_profile_summary": "가족과 여유로운 가을 여행",
		"why_best": "음식과 평지 코스가 모두 맞아요",
		"why_alternatives": {"F2": "도심에서 즐기는 축제"},
		"final_message": "즐거운 여행 되세요"
	}`+"\n```")
	conv := seedCompletedConversation(t, fx.factory, fx.userID, entity.ConversationStatusCompleted)
	ctx := context.Background()

	first, err := fx.svc.Finalize(ctx, fx.userID, conv.SessionId)
	require.NoError(t, err)
	assert.Equal(t, "가족과 여유로운 가을 여행", first.UserProfileSummary)
	assert.Equal(t, "음식과 평지 코스가 모두 맞아요", first.TopRecommendation.WhyBest)
	assert.Equal(t, "도심에서 즐기는 축제", first.AlternativeRecommendations[0].WhyAlternative)
	assert.NotEmpty(t, first.RecommendationSummary)
	require.Len(t, fx.llm.Options, 1)
	assert.Equal(t, finalizeMaxTokens, fx.llm.Options[0].MaxTokens)
	prompts := len(fx.llm.Prompts)

	fx.svc.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	second, err := fx.svc.Finalize(ctx, fx.userID, conv.SessionId)
	require.NoError(t, err)
	assert.Equal(t, first.Timestamp, second.Timestamp)
	assert.Len(t, fx.llm.Prompts, prompts)
}

func TestRecommendationService_FinalizeReusesStoredResultAfterCacheExpiry(t *testing.T) {
	fx := newRecommendationFixture(t, `{"final_message": "첫 번째 답변"}`)
	conv := seedCompletedConversation(t, fx.factory, fx.userID, entity.ConversationStatusCompleted)
	ctx := context.Background()

	first, err := fx.svc.Finalize(ctx, fx.userID, conv.SessionId)
	require.NoError(t, err)
	prompts := len(fx.llm.Prompts)

	require.NoError(t, fx.svc.cache.Delete(ctx, conv.SessionId))
	fx.svc.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	second, err := fx.svc.Finalize(ctx, fx.userID, conv.SessionId)
	require.NoError(t, err)
	assert.Equal(t, first.Timestamp, second.Timestamp)
	assert.Equal(t, "첫 번째 답변", second.FinalMessage)
	assert.Len(t, fx.llm.Prompts, prompts)

	_, ok := fx.svc.cache.Get(ctx, conv.SessionId)
	assert.True(t, ok)
	assert.Len(t, fx.events.types(), 1)
}

func TestRecommendationService_FinalizeWithoutCandidates(t *testing.T) {
	fx := newRecommendationFixture(t, `{}`)
	conv := seedCompletedConversation(t, fx.factory, fx.userID, entity.ConversationStatusCompleted)
	ctx := context.Background()

	uow := fx.factory.NewUnitOfWork(ctx)
	conv.TravelPeriod = "203001"
	require.NoError(t, uow.ConversationRepository().Update(ctx, conv))

	res, err := fx.svc.Finalize(ctx, fx.userID, conv.SessionId)
	require.NoError(t, err)
	assert.Nil(t, res.TopRecommendation)
	assert.Empty(t, res.AlternativeRecommendations)
	assert.Equal(t, noCandidatesMessage, res.FinalMessage)
	assert.Empty(t, fx.llm.Prompts)
}
