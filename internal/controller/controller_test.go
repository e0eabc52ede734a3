package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/model"
	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/internal/pkg/serverutils"
	"namdo-bot-be/internal/repository/memory"
	"namdo-bot-be/internal/repository/specification"
	"namdo-bot-be/internal/repository/unitofwork"
	"namdo-bot-be/internal/service"
	"namdo-bot-be/pkg/conversation"
	"namdo-bot-be/pkg/database"
	"namdo-bot-be/pkg/events"
	"namdo-bot-be/pkg/llm/fake"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-secret"

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, []byte) error { return nil }

type stubEnqueuer struct {
	err   error
	calls int
}

func (s *stubEnqueuer) EnqueueFestivalSync(context.Context, string) (string, error) {
	s.calls++
	return "task-1", s.err
}

type testServer struct {
	app      *fiber.App
	factory  unitofwork.RepositoryFactory
	enqueuer *stubEnqueuer
}

func newTestServer(t *testing.T, withQueue bool) *testServer {
	t.Helper()
	db, err := database.OpenMemory(strings.ReplaceAll(t.Name(), "/", "_"), model.All()...)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	factory := unitofwork.NewRepositoryFactory(db)
	log := logger.NewNopLogger()
	jwt := serverutils.NewJwtMiddleware(testSecret, factory)

	authService := service.NewAuthService(factory, testSecret, 30*time.Minute, log)
	userService := service.NewUserService(factory)
	chatbotService := service.NewChatbotService(factory, conversation.DefaultScenario(), nopPublisher{}, events.Discard{}, log)
	recommendationService := service.NewRecommendationService(factory, fake.NewProvider("not json"), memory.NewRecommendationCache(), events.Discard{}, log)
	festivalService := service.NewFestivalService(factory, nil, []string{"광주"}, events.Discard{}, log, log)

	ts := &testServer{factory: factory, enqueuer: &stubEnqueuer{}}
	var enqueuer FestivalSyncEnqueuer
	if withQueue {
		enqueuer = ts.enqueuer
	}

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewHealthController(func(context.Context) error { return nil }).RegisterRoutes(app)
	api := app.Group("/api")
	NewAuthController(authService).RegisterRoutes(api)
	NewUserController(userService, jwt).RegisterRoutes(api)
	NewChatbotController(chatbotService, jwt).RegisterRoutes(api)
	NewRecommendationController(recommendationService, jwt).RegisterRoutes(api)
	NewFestivalController(festivalService, enqueuer, jwt).RegisterRoutes(api)
	ts.app = app
	return ts
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (ts *testServer) login(t *testing.T, username string) string {
	t.Helper()
	status, _ := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status)

	form := url.Values{"username": {username}, "password": {"secret123"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	require.Equal(t, "bearer", token.TokenType)
	return token.AccessToken
}

func TestAuthRoutes(t *testing.T) {
	ts := newTestServer(t, false)
	ts.login(t, "traveler")

	status, env := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "traveler", "email": "other@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "이미 등록된 아이디입니다.", env.Message)

	status, _ = ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "x", "email": "not-an-email", "password": "1",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = ts.do(t, http.MethodPost, "/api/auth/token", "", map[string]string{
		"username": "traveler", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUserRoutes(t *testing.T) {
	ts := newTestServer(t, false)
	token := ts.login(t, "profile")

	status, _ := ts.do(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := ts.do(t, http.MethodPut, "/api/users/me", token, map[string]string{"full_name": "남도 여행자"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "남도 여행자")

	status, _ = ts.do(t, http.MethodPost, "/api/users/me/preferences", token, map[string]string{
		"preference_type": "default_companion", "preference_value": "친구",
	})
	require.Equal(t, http.StatusOK, status)

	status, env = ts.do(t, http.MethodGet, "/api/users/me/preferences", token, nil)
	require.Equal(t, http.StatusOK, status)
	var prefs []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &prefs))
	require.Len(t, prefs, 1)
	assert.Equal(t, "친구", prefs[0]["preference_value"])
}

func TestProtectedRoutesRejectInactiveAndUnknownUsers(t *testing.T) {
	ts := newTestServer(t, false)
	token := ts.login(t, "sleeper")

	status, _ := ts.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)

	ctx := context.Background()
	uow := ts.factory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: "sleeper"})
	require.NoError(t, err)
	require.NotNil(t, user)
	user.IsActive = false
	require.NoError(t, uow.UserRepository().Update(ctx, user))

	status, env := ts.do(t, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Inactive user", env.Message)

	status, _ = ts.do(t, http.MethodPost, "/api/chat/initialize", token, map[string]interface{}{
		"travel_period": "202510", "companion_type": "연인",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	t.Run("unknown user", func(t *testing.T) {
		// same secret, the user only exists in the subtest's database
		ghost := newTestServer(t, false).login(t, "ghost")
		status, env := ts.do(t, http.MethodGet, "/api/users/me", ghost, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "Could not validate credentials", env.Message)
	})
}

func TestConversationRoutes(t *testing.T) {
	ts := newTestServer(t, false)
	token := ts.login(t, "chatter")
	other := ts.login(t, "stranger")

	ctx := context.Background()
	require.NoError(t, ts.factory.NewUnitOfWork(ctx).FestivalRepository().Upsert(ctx, &entity.Festival{
		ContentId: "F1", Title: "남도음식문화큰잔치", Region: "전남", Addr1: "전남 순천시",
		StartDate: "20251010", EndDate: "20251012", FestivalType: "음식", ProgressType: "평지",
	}))

	status, env := ts.do(t, http.MethodPost, "/api/chat/initialize", token, map[string]interface{}{
		"travel_period": "202510", "companion_type": "부모님 동반 가족", "has_pets": false,
	})
	require.Equal(t, http.StatusOK, status)
	var started struct {
		SessionId  string   `json:"session_id"`
		TurnNumber int      `json:"turn_number"`
		Options    []string `json:"options"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &started))
	assert.Equal(t, 1, started.TurnNumber)

	status, _ = ts.do(t, http.MethodGet, "/api/recommendations/"+started.SessionId, token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = ts.do(t, http.MethodPost, "/api/chat", token, map[string]string{
		"session_id": started.SessionId, "selected_option": "없는 선택지",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = ts.do(t, http.MethodPost, "/api/chat", other, map[string]string{
		"session_id": started.SessionId, "user_response": "안녕",
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = ts.do(t, http.MethodPost, "/api/chat", token, map[string]string{
		"session_id": "missing", "user_response": "안녕",
	})
	assert.Equal(t, http.StatusNotFound, status)

	for _, option := range []string{
		conversation.OptionRelaxing, conversation.OptionFood, conversation.OptionFlatWalk, conversation.OptionRecommend,
	} {
		status, _ = ts.do(t, http.MethodPost, "/api/chat", token, map[string]string{
			"session_id": started.SessionId, "selected_option": option,
		})
		require.Equal(t, http.StatusOK, status)
	}

	status, _ = ts.do(t, http.MethodPost, "/api/chat", token, map[string]string{
		"session_id": started.SessionId, "user_response": "한 번 더",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, env = ts.do(t, http.MethodGet, "/api/chat/"+started.SessionId+"/messages", token, nil)
	require.Equal(t, http.StatusOK, status)
	var msgs []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	assert.Len(t, msgs, 9)

	status, env = ts.do(t, http.MethodGet, "/api/recommendations/"+started.SessionId, token, nil)
	require.Equal(t, http.StatusOK, status)
	var recs struct {
		Recommendations []struct {
			Name  string `json:"name"`
			Score int    `json:"score"`
		} `json:"recommendations"`
		TotalTurns int `json:"total_turns"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &recs))
	require.Len(t, recs.Recommendations, 1)
	assert.Equal(t, 85, recs.Recommendations[0].Score)
	assert.Equal(t, 9, recs.TotalTurns)

	status, env = ts.do(t, http.MethodPost, "/api/bot/finalize", token, map[string]string{"session_id": started.SessionId})
	require.Equal(t, http.StatusOK, status)
	var final struct {
		TopRecommendation struct {
			Title string `json:"title"`
		} `json:"top_recommendation"`
		FinalMessage string `json:"final_message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &final))
	assert.Equal(t, "남도음식문화큰잔치", final.TopRecommendation.Title)
	assert.NotEmpty(t, final.FinalMessage)

	status, env = ts.do(t, http.MethodGet, "/api/chat/sessions", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), started.SessionId)
}

func TestGreetingRoute(t *testing.T) {
	ts := newTestServer(t, false)
	token := ts.login(t, "greeter")

	status, env := ts.do(t, http.MethodPost, "/api/bot/greeting", token, map[string]string{
		"travel_period": "202510", "companion_type": "연인",
	})
	require.Equal(t, http.StatusOK, status)
	var greeting struct {
		NextQuestion string   `json:"next_question"`
		Choices      []string `json:"choices"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &greeting))
	assert.NotEmpty(t, greeting.NextQuestion)
	assert.Len(t, greeting.Choices, 3)

	status, _ = ts.do(t, http.MethodPost, "/api/bot/greeting", token, map[string]string{"travel_period": "202510"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestFestivalRoutes(t *testing.T) {
	ts := newTestServer(t, false)
	token := ts.login(t, "admin")

	status, env := ts.do(t, http.MethodGet, "/api/festivals?region="+url.QueryEscape("광주")+"&page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"total":0`)

	status, _ = ts.do(t, http.MethodGet, "/api/festivals?limit=1000", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = ts.do(t, http.MethodGet, "/api/festivals/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.do(t, http.MethodPost, "/api/festivals/sync", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// no TourAPI key and no queue
	status, _ = ts.do(t, http.MethodPost, "/api/festivals/sync", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestFestivalSyncRouteQueues(t *testing.T) {
	ts := newTestServer(t, true)
	token := ts.login(t, "admin")

	status, env := ts.do(t, http.MethodPost, "/api/festivals/sync", token, nil)
	require.Equal(t, http.StatusAccepted, status)
	assert.Contains(t, string(env.Data), "task-1")
	assert.Equal(t, 1, ts.enqueuer.calls)

	ts.enqueuer.err = asynq.ErrTaskIDConflict
	status, _ = ts.do(t, http.MethodPost, "/api/festivals/sync", token, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestHealthRoutes(t *testing.T) {
	app := fiber.New()
	NewHealthController(func(context.Context) error { return errors.New("db down") }).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ts := newTestServer(t, false)
	status, env := ts.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "healthy")
}
