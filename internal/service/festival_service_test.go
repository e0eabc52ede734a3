package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/pkg/events"
	"namdo-bot-be/pkg/tourapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	areas    map[string]string
	items    map[string][]tourapi.FestivalItem
	failPet  map[string]bool
	queries  []tourapi.FestivalQuery
	searchFn func(q tourapi.FestivalQuery) error
}

func (f *fakeSource) ResolveArea(_ context.Context, region, _ string) (string, string, error) {
	code, ok := f.areas[region]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", tourapi.ErrUnknownArea, region)
	}
	return code, "", nil
}

func (f *fakeSource) SearchFestivals(_ context.Context, q tourapi.FestivalQuery) ([]tourapi.FestivalItem, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.searchFn != nil {
		if err := f.searchFn(q); err != nil {
			return nil, err
		}
	}
	return f.items[q.AreaCode], nil
}

func (f *fakeSource) DetailCommon(_ context.Context, id string) (*tourapi.CommonDetail, error) {
	return &tourapi.CommonDetail{Title: id, Overview: "overview " + id}, nil
}

func (f *fakeSource) DetailIntro(_ context.Context, id, _ string) (*tourapi.IntroDetail, error) {
	return &tourapi.IntroDetail{EventPlace: "place " + id, ProgressType: "평지", FestivalType: "음식"}, nil
}

func (f *fakeSource) DetailPet(_ context.Context, id string) (*tourapi.PetDetail, error) {
	if f.failPet[id] {
		return nil, tourapi.ErrUnavailable
	}
	return &tourapi.PetDetail{AcmpyPsblCpam: "전 구역 동반 가능"}, nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		areas: map[string]string{"전라남도": "38", "광주": "5"},
		items: map[string][]tourapi.FestivalItem{
			"38": {
				{ContentID: "100", ContentTypeID: "15", Title: "순천만 축제", Addr1: "전남 순천시", EventStartDate: "20251010", EventEndDate: "20251012"},
				{ContentID: "101", ContentTypeID: "15", Title: "목포 항구축제", Addr1: "전남 목포시", EventStartDate: "20251020", EventEndDate: "20251022"},
			},
			"5": {
				{ContentID: "200", ContentTypeID: "15", Title: "충장축제", Addr1: "광주 동구", EventStartDate: "20251101", EventEndDate: "20251103"},
			},
		},
		failPet: map[string]bool{"101": true},
	}
}

func newFestivalService(t *testing.T, source FestivalSource, regions []string) (*festivalService, *recordingEvents) {
	t.Helper()
	evts := &recordingEvents{}
	svc := NewFestivalService(setupFactory(t), source, regions, evts, logger.NewNopLogger(), logger.NewNopLogger()).(*festivalService)
	svc.now = func() time.Time { return time.Date(2025, 9, 20, 4, 0, 0, 0, time.UTC) }
	return svc, evts
}

func TestFestivalService_Sync(t *testing.T) {
	source := newFakeSource()
	svc, evts := newFestivalService(t, source, []string{"전라남도", "광주", "제주도"})
	ctx := context.Background()

	report, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "20250920", report.EventStart)
	assert.Equal(t, map[string]int{"전라남도": 2, "광주": 1}, report.PerRegion)
	for _, q := range source.queries {
		assert.Equal(t, "20250920", q.EventStartDate)
	}
	assert.Equal(t, []string{events.TypeFestivalSyncCompleted}, evts.types())

	// a second run updates in place
	report, err = svc.Sync(ctx)
	require.NoError(t, err)
	list, err := svc.List(ctx, &dto.FestivalListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.Equal(t, 3, report.Total)
}

func TestFestivalService_SyncErrors(t *testing.T) {
	_, err := NewFestivalService(setupFactory(t), nil, []string{"광주"}, events.Discard{}, logger.NewNopLogger(), logger.NewNopLogger()).Sync(context.Background())
	assert.ErrorIs(t, err, tourapi.ErrMissingServiceKey)

	source := newFakeSource()
	source.searchFn = func(tourapi.FestivalQuery) error { return tourapi.ErrUnavailable }
	svc, _ := newFestivalService(t, source, []string{"광주"})
	_, err = svc.Sync(context.Background())
	assert.True(t, errors.Is(err, tourapi.ErrUnavailable))
}

func TestFestivalService_ListAndGet(t *testing.T) {
	svc, _ := newFestivalService(t, newFakeSource(), []string{"전라남도", "광주"})
	ctx := context.Background()
	_, err := svc.Sync(ctx)
	require.NoError(t, err)

	all, err := svc.List(ctx, &dto.FestivalListQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "100", all.Items[0].ContentId)
	assert.Equal(t, 1, all.Page)

	page2, err := svc.List(ctx, &dto.FestivalListQuery{Limit: 2, Page: 2})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, "200", page2.Items[0].ContentId)

	pets, err := svc.List(ctx, &dto.FestivalListQuery{PetFriendly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), pets.Total)
	for _, item := range pets.Items {
		assert.True(t, item.PetFriendly)
	}

	regional, err := svc.List(ctx, &dto.FestivalListQuery{Region: "광주", Period: "202511"})
	require.NoError(t, err)
	require.Len(t, regional.Items, 1)
	assert.Equal(t, "충장축제", regional.Items[0].Title)

	detail, err := svc.Get(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "overview 100", detail.Overview)
	assert.Equal(t, "place 100", detail.EventPlace)
	assert.Equal(t, "평지", detail.ProgressType)
	assert.Equal(t, "전 구역 동반 가능", detail.PetInfo["acmpyPsblCpam"])

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrFestivalNotFound)
}

func TestFestivalService_ExportRows(t *testing.T) {
	svc, _ := newFestivalService(t, newFakeSource(), []string{"전라남도"})
	ctx := context.Background()
	_, err := svc.Sync(ctx)
	require.NoError(t, err)

	base, common, intro, err := svc.ExportRows(ctx)
	require.NoError(t, err)
	assert.Len(t, base, 2)
	assert.Len(t, common, 2)
	assert.Len(t, intro, 2)
	assert.Equal(t, "전라남도", base[0]["region"])
	assert.Equal(t, "", base[1]["acmpyPsblCpam"])
}
