package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/model"
	"namdo-bot-be/internal/repository/unitofwork"
	"namdo-bot-be/pkg/database"
	"namdo-bot-be/pkg/events"

	"github.com/stretchr/testify/require"
)

func setupFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenMemory(name, model.All()...)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return unitofwork.NewRepositoryFactory(db)
}

func seedUser(t *testing.T, f unitofwork.RepositoryFactory, username string) *entity.User {
	t.Helper()
	ctx := context.Background()
	user := &entity.User{Username: username, Email: username + "@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, f.NewUnitOfWork(ctx).UserRepository().Create(ctx, user))
	return user
}

func seedFestivals(t *testing.T, f unitofwork.RepositoryFactory, festivals ...*entity.Festival) {
	t.Helper()
	ctx := context.Background()
	uow := f.NewUnitOfWork(ctx)
	for _, fe := range festivals {
		require.NoError(t, uow.FestivalRepository().Upsert(ctx, fe))
	}
}

type recordingEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingEvents) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}
