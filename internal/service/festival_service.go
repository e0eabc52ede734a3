package service

import (
	"context"
	"errors"
	"time"

	"namdo-bot-be/internal/dto"
	"namdo-bot-be/internal/entity"
	"namdo-bot-be/internal/mapper"
	"namdo-bot-be/internal/metrics"
	"namdo-bot-be/internal/pkg/logger"
	"namdo-bot-be/internal/repository/specification"
	"namdo-bot-be/internal/repository/unitofwork"
	"namdo-bot-be/internal/tracer"
	"namdo-bot-be/pkg/events"
	"namdo-bot-be/pkg/export"
	"namdo-bot-be/pkg/tourapi"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	detailConcurrency = 4
	defaultPageLimit  = 20
)

// FestivalSource is the subset of the TourAPI client the ingest needs.
type FestivalSource interface {
	ResolveArea(ctx context.Context, region, sigungu string) (string, string, error)
	SearchFestivals(ctx context.Context, q tourapi.FestivalQuery) ([]tourapi.FestivalItem, error)
	DetailCommon(ctx context.Context, contentID string) (*tourapi.CommonDetail, error)
	DetailIntro(ctx context.Context, contentID, contentTypeID string) (*tourapi.IntroDetail, error)
	DetailPet(ctx context.Context, contentID string) (*tourapi.PetDetail, error)
}

type IFestivalService interface {
	Sync(ctx context.Context) (*dto.SyncReport, error)
	List(ctx context.Context, q *dto.FestivalListQuery) (*dto.FestivalListResponse, error)
	Get(ctx context.Context, contentId string) (*dto.FestivalDetailResponse, error)
	ExportRows(ctx context.Context) (base, common, intro []export.Row, err error)
}

type festivalService struct {
	uowFactory     unitofwork.RepositoryFactory
	source         FestivalSource
	regions        []string
	eventPublisher events.Publisher
	logger         logger.ILogger
	syncLogger     logger.ILogger
	mapper         *mapper.FestivalMapper
	now            func() time.Time
}

// NewFestivalService wires the ingest. source may be nil when no TourAPI key
// is configured; Sync then fails with tourapi.ErrMissingServiceKey.
func NewFestivalService(
	uowFactory unitofwork.RepositoryFactory,
	source FestivalSource,
	regions []string,
	eventPublisher events.Publisher,
	log logger.ILogger,
	syncLog logger.ILogger,
) IFestivalService {
	return &festivalService{
		uowFactory:     uowFactory,
		source:         source,
		regions:        regions,
		eventPublisher: eventPublisher,
		logger:         log,
		syncLogger:     syncLog,
		mapper:         mapper.NewFestivalMapper(),
		now:            time.Now,
	}
}

func (s *festivalService) Sync(ctx context.Context) (*dto.SyncReport, error) {
	if s.source == nil {
		return nil, tourapi.ErrMissingServiceKey
	}

	ctx, span := tracer.Tracer().Start(ctx, "festival.sync")
	defer span.End()

	report := &dto.SyncReport{
		StartedAt:  s.now(),
		EventStart: s.now().Format("20060102"),
		PerRegion:  make(map[string]int, len(s.regions)),
	}

	for _, region := range s.regions {
		stored, failed, err := s.syncRegion(ctx, region, report.EventStart)
		if err != nil {
			if errors.Is(err, tourapi.ErrUnknownArea) {
				s.logger.Warn("FESTIVAL", "Skipping unknown region", map[string]interface{}{"region": region})
				continue
			}
			return nil, err
		}
		report.PerRegion[region] = stored
		report.Total += stored
		report.Failed += failed
		metrics.FestivalsSynced.WithLabelValues(region).Add(float64(stored))
	}

	report.FinishedAt = s.now()
	span.SetAttributes(attribute.Int("festivals", report.Total))

	s.logger.Info("FESTIVAL", "Festival sync completed", map[string]interface{}{
		"total":      report.Total,
		"failed":     report.Failed,
		"per_region": report.PerRegion,
	})

	evt := events.New(events.TypeFestivalSyncCompleted, map[string]interface{}{
		"total":            report.Total,
		"per_region":       report.PerRegion,
		"event_start_date": report.EventStart,
	})
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("FESTIVAL", "Failed to publish event", map[string]interface{}{"error": err.Error()})
	}
	return report, nil
}

// syncRegion stores every festival of the region starting from eventStart.
// A failed detail lookup is stored as an empty record and counted in failed.
func (s *festivalService) syncRegion(ctx context.Context, region, eventStart string) (stored, failed int, err error) {
	areaCode, sigunguCode, err := s.source.ResolveArea(ctx, region, "")
	if err != nil {
		return 0, 0, err
	}

	items, err := s.source.SearchFestivals(ctx, tourapi.FestivalQuery{
		AreaCode:       areaCode,
		SigunguCode:    sigunguCode,
		EventStartDate: eventStart,
	})
	if err != nil {
		return 0, 0, err
	}
	if len(items) == 0 {
		s.logger.Info("FESTIVAL", "No upcoming festivals", map[string]interface{}{"region": region})
		return 0, 0, nil
	}

	festivals := make([]*entity.Festival, len(items))
	failures := make([]int, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)
	for i, item := range items {
		g.Go(func() error {
			festivals[i], failures[i] = s.withDetails(gctx, region, item)
			return nil
		})
	}
	_ = g.Wait()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, 0, err
	}
	defer uow.Rollback()

	for _, f := range festivals {
		if err := uow.FestivalRepository().Upsert(ctx, f); err != nil {
			return 0, 0, err
		}
	}
	if err := uow.Commit(); err != nil {
		return 0, 0, err
	}

	for _, n := range failures {
		failed += n
	}
	return len(festivals), failed, nil
}

func (s *festivalService) withDetails(ctx context.Context, region string, item tourapi.FestivalItem) (*entity.Festival, int) {
	failed := 0
	logFailure := func(endpoint string, err error) {
		failed++
		s.syncLogger.Warn("FESTIVAL_SYNC", "Detail lookup failed", map[string]interface{}{
			"endpoint":  endpoint,
			"contentid": item.ContentID,
			"error":     err.Error(),
		})
	}

	pet, err := s.source.DetailPet(ctx, item.ContentID)
	if err != nil {
		logFailure("detailPetTour2", err)
		pet = &tourapi.PetDetail{}
	}
	common, err := s.source.DetailCommon(ctx, item.ContentID)
	if err != nil {
		logFailure("detailCommon2", err)
		common = &tourapi.CommonDetail{}
	}
	intro, err := s.source.DetailIntro(ctx, item.ContentID, item.ContentTypeID)
	if err != nil {
		logFailure("detailIntro2", err)
		intro = &tourapi.IntroDetail{}
	}

	return s.mapper.FromTourAPI(region, item, common, intro, pet), failed
}

func (s *festivalService) List(ctx context.Context, q *dto.FestivalListQuery) (*dto.FestivalListResponse, error) {
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}

	var filters []specification.Specification
	if q.Region != "" {
		filters = append(filters, specification.RegionLike{Region: q.Region})
	}
	if q.Period != "" {
		filters = append(filters, specification.StartingFrom{Period: q.Period})
	}
	if q.Keyword != "" {
		filters = append(filters, specification.TitleOrAddressLike{Keyword: q.Keyword})
	}
	if q.PetFriendly {
		filters = append(filters, specification.PetFriendly{})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.FestivalRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	specs := append(filters,
		specification.WithPet{},
		specification.OrderBy{Field: "start_date"},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	festivals, err := uow.FestivalRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FestivalResponse, len(festivals))
	for i, f := range festivals {
		items[i] = toFestivalResponse(f)
	}
	return &dto.FestivalListResponse{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *festivalService) Get(ctx context.Context, contentId string) (*dto.FestivalDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	f, err := uow.FestivalRepository().FindOne(ctx,
		specification.ByContentID{ContentID: contentId},
		specification.WithDetails{},
	)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFestivalNotFound
	}

	res := &dto.FestivalDetailResponse{FestivalResponse: toFestivalResponse(f)}
	if d := f.Detail; d != nil {
		res.Overview = d.Overview
		res.Homepage = d.Homepage
	}
	if i := f.Intro; i != nil {
		res.EventPlace = i.EventPlace
		res.PlayTime = i.PlayTime
		res.Sponsor = i.Sponsor1
	}
	if p := f.Pet; p != nil {
		res.PetInfo = map[string]string{
			"acmpyPsblCpam":    p.AcmpyPsblCpam,
			"acmpyNeedMtr":     p.AcmpyNeedMtr,
			"acmpyTypeCd":      p.AcmpyTypeCd,
			"etcAcmpyInfo":     p.EtcAcmpyInfo,
			"relaPosesFclty":   p.RelaPosesFclty,
			"relaAcdntRiskMtr": p.RelaAcdntRiskMtr,
		}
	}
	return res, nil
}

func (s *festivalService) ExportRows(ctx context.Context) (base, common, intro []export.Row, err error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	festivals, err := uow.FestivalRepository().FindAll(ctx,
		specification.WithDetails{},
		specification.OrderBy{Field: "region"},
		specification.OrderBy{Field: "start_date"},
	)
	if err != nil {
		return nil, nil, nil, err
	}
	base, common, intro = s.mapper.ToExportRows(festivals)
	return base, common, intro, nil
}

func toFestivalResponse(f *entity.Festival) dto.FestivalResponse {
	return dto.FestivalResponse{
		ContentId:     f.ContentId,
		ContentTypeId: f.ContentTypeId,
		Title:         f.Title,
		Addr1:         f.Addr1,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		Image:         f.Image,
		ProgressType:  f.ProgressType,
		FestivalType:  f.FestivalType,
		Tel:           f.Tel,
		Region:        f.Region,
		PetFriendly:   f.Pet != nil && f.Pet.AcmpyPsblCpam != "",
		UpdatedAt:     f.UpdatedAt,
	}
}
