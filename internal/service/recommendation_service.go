package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/mapper"
	"namdo-bot-be/internal/metrics"
	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/internal/repository/contract"
	"namdo-bot-be/internal/repository/specification"
	"namdo-bot-be/internal/repository/unitofwork"
	"namdo-bot-be/internal/tracer"
	"namdo-bot-be/pkg/events"
	"namdo-bot-be/pkg/llm"
	"namdo-bot-be/pkg/scoring"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	finalizeCacheTTL = time.Hour
	llmTimeout       = 30 * time.Second

	explainMaxTokens  = 1024
	finalizeMaxTokens = 1536

	noCandidatesMessage = "아쉽게도 지금 조건에 꼭 맞는 남도 축제를 찾지 못했어요. " +
		"여행 시기나 관심사를 바꿔 다시 대화를 시작해 보시겠어요?"
)

type IRecommendationService interface {
	GetRecommendations(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.RecommendationResponse, error)
	Finalize(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.FinalizeResponse, error)
}

type recommendationService struct {
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.LLMProvider
	cache          contract.RecommendationCache
	eventPublisher events.Publisher
	logger         logger.ILogger
	mapper         *mapper.FestivalMapper
	now            func() time.Time
}

func NewRecommendationService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	cache contract.RecommendationCache,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IRecommendationService {
	return &recommendationService{
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		cache:          cache,
		eventPublisher: eventPublisher,
		logger:         log,
		mapper:         mapper.NewFestivalMapper(),
		now:            time.Now,
	}
}

// ranked pairs a scored candidate with the stored festival it came from.
type ranked struct {
	scoring.Scored
	festival *entity.Festival
}

func (s *recommendationService) loadCompleted(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId string) (*entity.Conversation, error) {
	conv, err := findOwnedConversation(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if conv.Status != entity.ConversationStatusCompleted {
		return nil, ErrConversationNotCompleted
	}
	return conv, nil
}

func preferencesOf(c *entity.Conversation) scoring.Preferences {
	return scoring.Preferences{
		TravelPeriod:             c.TravelPeriod,
		Companion:                c.CompanionType,
		Atmosphere:               c.EnergyPreference,
		CoreExperience:           c.InterestFocus,
		AdditionalConsiderations: c.AdditionalRequirements,
	}
}

func (s *recommendationService) rank(ctx context.Context, uow unitofwork.UnitOfWork, conv *entity.Conversation) ([]ranked, error) {
	festivals, err := uow.FestivalRepository().FindAll(ctx,
		specification.StartingFrom{Period: conv.TravelPeriod},
		specification.WithDetails{},
	)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.Festival, len(festivals))
	candidates := make([]scoring.Candidate, len(festivals))
	for i, f := range festivals {
		byID[f.ContentId] = f
		candidates[i] = s.mapper.ToCandidate(f)
	}

	scored := scoring.Rank(preferencesOf(conv), candidates)
	metrics.RecommendationCandidates.Observe(float64(len(scored)))

	out := make([]ranked, len(scored))
	for i, sc := range scored {
		out[i] = ranked{Scored: sc, festival: byID[sc.Candidate.ContentID]}
	}
	return out, nil
}

func (s *recommendationService) GetRecommendations(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.RecommendationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conv, err := s.loadCompleted(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}
	results, err := s.rank(ctx, uow, conv)
	if err != nil {
		return nil, err
	}
	turns, err := uow.ConversationMessageRepository().LastTurnNumber(ctx, conv.Id)
	if err != nil {
		return nil, err
	}

	explanations := s.explain(ctx, conv, results)

	recs := make([]dto.FestivalRecommendation, len(results))
	for i, r := range results {
		c := r.Candidate
		recs[i] = dto.FestivalRecommendation{
			Rank:           i + 1,
			ContentId:      c.ContentID,
			Name:           c.Title,
			Location:       c.Addr,
			Description:    describe(r),
			ImageURL:       c.Image,
			Reason:         strings.Join(r.Reasons, ", "),
			XAIExplanation: explanations[c.ContentID],
			Score:          r.Score,
			ScoreBreakdown: r.Breakdown,
			PetFriendly:    c.PetFriendly,
		}
	}

	return &dto.RecommendationResponse{
		Recommendations:     recs,
		ConversationSummary: fmt.Sprintf("%s 여행", conv.TravelPeriod),
		TotalTurns:          turns,
	}, nil
}

// explain asks the model for one explanation per festival and fills in the
// deterministic text for any festival the model skipped or when it fails.
func (s *recommendationService) explain(ctx context.Context, conv *entity.Conversation, results []ranked) map[string]string {
	out := make(map[string]string, len(results))
	for _, r := range results {
		out[r.Candidate.ContentID] = fallbackExplanation(r.Scored)
	}
	if len(results) == 0 || s.llmProvider == nil {
		return out
	}

	ctx, span := tracer.Tracer().Start(ctx, "llm.explain")
	span.SetAttributes(attribute.Int("candidates", len(results)))
	defer span.End()

	var set dto.ExplanationSet
	if err := s.askJSON(ctx, explainPrompt(conv, results), explainMaxTokens, &set); err != nil {
		s.logger.Warn("RECOMMENDATION", "Using fallback explanations", map[string]interface{}{"error": err.Error()})
		return out
	}
	for id, text := range set.Explanations {
		if _, ok := out[id]; ok && strings.TrimSpace(text) != "" {
			out[id] = strings.TrimSpace(text)
		}
	}
	return out
}

func (s *recommendationService) Finalize(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.FinalizeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conv, err := s.loadCompleted(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	if raw, ok := s.cache.Get(ctx, sessionId); ok {
		var cached dto.FinalizeResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}
	// the stored result outlives the cache entry
	if len(conv.FinalResult) > 0 {
		var stored dto.FinalizeResponse
		if err := json.Unmarshal(conv.FinalResult, &stored); err == nil {
			s.remember(ctx, sessionId, conv.FinalResult)
			return &stored, nil
		}
	}

	results, err := s.rank(ctx, uow, conv)
	if err != nil {
		return nil, err
	}

	narrative := fallbackNarrative(conv, results)
	if len(results) > 0 && s.llmProvider != nil {
		spanCtx, span := tracer.Tracer().Start(ctx, "llm.finalize")
		var fromModel dto.FinalizeNarrative
		if err := s.askJSON(spanCtx, finalizePrompt(conv, results), finalizeMaxTokens, &fromModel); err != nil {
			s.logger.Warn("RECOMMENDATION", "Using fallback finalize narrative", map[string]interface{}{
				"error":      err.Error(),
				"session_id": sessionId,
			})
		} else {
			narrative = mergeNarrative(narrative, fromModel)
		}
		span.End()
	}

	res := buildFinalize(conv, results, narrative, s.now())

	payload, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	conv.FinalResult = payload
	if err := uow.ConversationRepository().Update(ctx, conv); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.remember(ctx, sessionId, payload)

	evt := events.New(events.TypeRecommendationServed, map[string]interface{}{
		"session_id": sessionId,
		"user_id":    userId.String(),
		"count":      len(results),
	})
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("RECOMMENDATION", "Failed to publish event", map[string]interface{}{"error": err.Error()})
	}

	return res, nil
}

func (s *recommendationService) remember(ctx context.Context, sessionId string, payload []byte) {
	if err := s.cache.Set(ctx, sessionId, payload, finalizeCacheTTL); err != nil {
		s.logger.Warn("RECOMMENDATION", "Failed to cache finalize result", map[string]interface{}{"error": err.Error()})
	}
}

func (s *recommendationService) askJSON(ctx context.Context, prompt string, maxTokens int, v any) error {
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	raw, err := s.llmProvider.Generate(ctx, prompt, llm.WithJSON(), llm.WithTemperature(0.3), llm.WithMaxTokens(maxTokens))
	if err != nil {
		metrics.RecordLLMCall(s.llmProvider.Name(), "error")
		return err
	}
	if err := llm.DecodeJSON(raw, v); err != nil {
		metrics.RecordLLMCall(s.llmProvider.Name(), "fallback")
		return fmt.Errorf("decode model output: %w", err)
	}
	metrics.RecordLLMCall(s.llmProvider.Name(), "ok")
	return nil
}

func buildFinalize(conv *entity.Conversation, results []ranked, n dto.FinalizeNarrative, now time.Time) *dto.FinalizeResponse {
	res := &dto.FinalizeResponse{
		SessionId:                  conv.SessionId,
		UserProfileSummary:         n.UserProfileSummary,
		RecommendationSummary:      n.RecommendationSummary,
		AlternativeRecommendations: []dto.AlternativeRecommendation{},
		ReasoningExplanation:       n.ReasoningExplanation,
		FinalMessage:               n.FinalMessage,
		Timestamp:                  now.Format(time.RFC3339),
	}
	if len(results) == 0 {
		return res
	}

	top := results[0]
	res.TopRecommendation = &dto.TopRecommendation{
		Title:     top.Candidate.Title,
		Region:    top.Candidate.Region,
		StartDate: top.Candidate.StartDate,
		EndDate:   top.Candidate.EndDate,
		Location:  top.Candidate.Addr,
		Score:     top.Score,
		Reasons:   top.Reasons,
		WhyBest:   n.WhyBest,
		Image:     top.Candidate.Image,
		Tel:       telOf(top),
	}

	for i, alt := range results[1:] {
		why := n.WhyAlternatives[alt.Candidate.ContentID]
		if why == "" {
			why = fallbackExplanation(alt.Scored)
		}
		res.AlternativeRecommendations = append(res.AlternativeRecommendations, dto.AlternativeRecommendation{
			Rank:           i + 2,
			Title:          alt.Candidate.Title,
			Region:         alt.Candidate.Region,
			StartDate:      alt.Candidate.StartDate,
			EndDate:        alt.Candidate.EndDate,
			Location:       alt.Candidate.Addr,
			Score:          alt.Score,
			Reasons:        alt.Reasons,
			WhyAlternative: why,
			Image:          alt.Candidate.Image,
			Tel:            telOf(alt),
		})
	}
	return res
}

func telOf(r ranked) string {
	if r.festival == nil {
		return ""
	}
	return r.festival.Tel
}

func describe(r ranked) string {
	if r.festival != nil && r.festival.Detail != nil && r.festival.Detail.Overview != "" {
		return r.festival.Detail.Overview
	}
	c := r.Candidate
	return fmt.Sprintf("%s ~ %s, %s", c.StartDate, c.EndDate, c.Addr)
}

func fallbackExplanation(sc scoring.Scored) string {
	if len(sc.Reasons) == 0 {
		return fmt.Sprintf("%s은(는) %d점을 받았습니다.", sc.Candidate.Title, sc.Score)
	}
	return fmt.Sprintf("%s은(는) %s 조건을 충족해 %d점을 받았습니다.",
		sc.Candidate.Title, strings.Join(sc.Reasons, ", "), sc.Score)
}

func profileSummary(c *entity.Conversation) string {
	summary := fmt.Sprintf("%s에 %s와(과) 함께 떠나는 여행", c.TravelPeriod, c.CompanionType)
	if c.EnergyPreference != "" {
		summary += fmt.Sprintf(", 분위기 '%s'", c.EnergyPreference)
	}
	if c.InterestFocus != "" {
		summary += fmt.Sprintf(", 관심사 '%s'", c.InterestFocus)
	}
	if c.AdditionalRequirements != "" {
		summary += fmt.Sprintf(", 고려 사항 '%s'", c.AdditionalRequirements)
	}
	if c.HasPets {
		summary += ", 반려동물 동반"
	}
	return summary
}

// fallbackNarrative is built only from scores so finalize never depends on
// the model being reachable.
func fallbackNarrative(conv *entity.Conversation, results []ranked) dto.FinalizeNarrative {
	n := dto.FinalizeNarrative{
		UserProfileSummary: profileSummary(conv),
		WhyAlternatives:    map[string]string{},
	}
	if len(results) == 0 {
		n.RecommendationSummary = "조건에 맞는 축제가 없습니다."
		n.ReasoningExplanation = fmt.Sprintf("모든 축제가 기준 점수(%d점)를 넘지 못했습니다.", scoring.Threshold)
		n.FinalMessage = noCandidatesMessage
		return n
	}

	top := results[0]
	n.RecommendationSummary = fmt.Sprintf("총 %d개의 축제를 추천합니다. 1순위는 %s(%d점)입니다.",
		len(results), top.Candidate.Title, top.Score)
	n.WhyBest = fallbackExplanation(top.Scored)
	for _, alt := range results[1:] {
		n.WhyAlternatives[alt.Candidate.ContentID] = fallbackExplanation(alt.Scored)
	}
	n.ReasoningExplanation = fmt.Sprintf(
		"지역 %d점, 계절 %d점, 동행 %d점, 관심사 %d점, 접근성 %d점 기준으로 합산해 %d점을 넘는 축제만 골랐습니다.",
		scoring.RegionPoints, scoring.SeasonPoints, scoring.CompanionPoints,
		scoring.InterestPoints, scoring.AccessibilityPoints, scoring.Threshold)
	n.FinalMessage = fmt.Sprintf("%s에서 즐거운 남도 여행 되세요!", top.Candidate.Title)
	return n
}

// mergeNarrative keeps fallback text for every field the model left blank.
func mergeNarrative(base, model dto.FinalizeNarrative) dto.FinalizeNarrative {
	pick := func(fromModel, fallback string) string {
		if strings.TrimSpace(fromModel) != "" {
			return strings.TrimSpace(fromModel)
		}
		return fallback
	}
	out := dto.FinalizeNarrative{
		UserProfileSummary:    pick(model.UserProfileSummary, base.UserProfileSummary),
		RecommendationSummary: pick(model.RecommendationSummary, base.RecommendationSummary),
		WhyBest:               pick(model.WhyBest, base.WhyBest),
		ReasoningExplanation:  pick(model.ReasoningExplanation, base.ReasoningExplanation),
		FinalMessage:          pick(model.FinalMessage, base.FinalMessage),
		WhyAlternatives:       map[string]string{},
	}
	for id, text := range base.WhyAlternatives {
		out.WhyAlternatives[id] = pick(model.WhyAlternatives[id], text)
	}
	return out
}
