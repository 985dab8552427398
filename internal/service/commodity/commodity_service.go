package commodity

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ougirez/agristat/internal/analytics"
	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/domain/dto"
	"github.com/ougirez/agristat/internal/pkg/constants"
	"github.com/ougirez/agristat/internal/pkg/logger"
	"github.com/ougirez/agristat/internal/pkg/metrics"
	"github.com/ougirez/agristat/internal/pkg/store"
)

// snapshot is an immutable view of one store version.
type snapshot struct {
	version uint64
	records []*domain.Commodity
	byID    map[string]*domain.Commodity
	idx     *analytics.Indexes
}

// Service serializes writes to the store and publishes a fresh snapshot after
// each of them. Reads never block: they work on whatever snapshot was current
// when they started.
type Service struct {
	mu     sync.Mutex
	store  store.Store
	engine *analytics.Engine
	snap   atomic.Pointer[snapshot]
}

func NewCommodityService(store store.Store, engine *analytics.Engine) *Service {
	s := &Service{store: store, engine: engine}
	s.rebuild(context.Background())
	return s
}

// rebuild must be called with mu held (or before the service is shared).
func (s *Service) rebuild(ctx context.Context) {
	start := time.Now()

	records := s.store.List()
	byID := make(map[string]*domain.Commodity, len(records))
	for _, c := range records {
		byID[c.ID] = c
	}

	next := &snapshot{
		version: s.store.Version(),
		records: records,
		byID:    byID,
		idx:     s.engine.Ingest(records),
	}
	s.snap.Store(next)

	elapsed := time.Since(start)
	metrics.IndexRebuildsTotal.Inc()
	metrics.IndexRebuildDurationMs.Observe(float64(elapsed.Microseconds()) / 1000)
	metrics.RecordsTotal.Set(float64(len(records)))
	metrics.SnapshotVersion.Set(float64(next.version))

	logger.Debugf(ctx, "indexes rebuilt: version-%d, records-%d, took-%s", next.version, len(records), elapsed)
}

func (s *Service) current() *snapshot {
	return s.snap.Load()
}

func (s *Service) Create(ctx context.Context, data dto.CommodityDto) *domain.Commodity {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.store.Create(data)
	s.rebuild(ctx)

	metrics.WritesTotal.WithLabelValues("create", "ok").Inc()
	logger.Infof(ctx, "commodity created: id-%s, region-%s, commodity-%s, year-%d", created.ID, created.Region, created.CommodityName, created.Year)

	return created
}

func (s *Service) Update(ctx context.Context, id string, patch dto.CommodityPatch) (*domain.Commodity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, ok := s.store.Update(id, patch)
	if !ok {
		metrics.WritesTotal.WithLabelValues("update", "not_found").Inc()
		return nil, constants.ErrCommodityNotFound
	}
	s.rebuild(ctx)

	metrics.WritesTotal.WithLabelValues("update", "ok").Inc()
	logger.Infof(ctx, "commodity updated: id-%s", id)

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Delete(id) {
		metrics.WritesTotal.WithLabelValues("delete", "not_found").Inc()
		return false
	}
	s.rebuild(ctx)

	metrics.WritesTotal.WithLabelValues("delete", "ok").Inc()
	logger.Infof(ctx, "commodity deleted: id-%s", id)

	return true
}

// Reset replaces the whole collection.
func (s *Service) Reset(ctx context.Context, records []*domain.Commodity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Replace(records)
	s.rebuild(ctx)

	metrics.WritesTotal.WithLabelValues("reset", "ok").Inc()
	logger.Warnf(ctx, "records replaced: count-%d", len(s.store.List()))
}

// ImportMany creates all rows under one lock and rebuilds the indexes once.
func (s *Service) ImportMany(ctx context.Context, rows []dto.CommodityDto) []*domain.Commodity {
	created := make([]*domain.Commodity, 0, len(rows))
	if len(rows) == 0 {
		return created
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		created = append(created, s.store.Create(row))
	}
	s.rebuild(ctx)

	metrics.WritesTotal.WithLabelValues("import", "ok").Add(float64(len(created)))
	logger.Infof(ctx, "commodities imported: count-%d", len(created))

	return created
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Commodity, error) {
	c, ok := s.current().byID[id]
	if !ok {
		logger.Debugf(ctx, "commodity not found: id-%s", id)
		return nil, constants.ErrCommodityNotFound
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, filter domain.CommodityFilter) []*domain.Commodity {
	snap := s.current()
	return s.query(ctx, snap, filter)
}

func (s *Service) Dashboard(ctx context.Context, filter domain.CommodityFilter) domain.Dashboard {
	snap := s.current()
	subset := s.query(ctx, snap, filter)

	return domain.Dashboard{
		RecordCount: len(subset),
		Aggregates:  s.engine.Aggregate(subset, snap.idx),
	}
}

// Regional compares every configured region for year, or for the latest year
// in the data when year is nil.
func (s *Service) Regional(ctx context.Context, year *domain.Year) []domain.RegionComparison {
	return s.engine.RegionalComparison(s.current().idx, year)
}

func (s *Service) Trend(ctx context.Context, commodity string, region *string) domain.ProductivityTrend {
	snap := s.current()
	subset := s.query(ctx, snap, domain.CommodityFilter{Commodity: &commodity, Region: region})

	return domain.ProductivityTrend{
		Commodity: commodity,
		Region:    region,
		Series:    analytics.YearlyAverages(subset),
		Growth:    s.engine.Growth(subset),
	}
}

func (s *Service) Catalog(ctx context.Context) domain.CatalogInfo {
	return domain.CatalogInfo{
		Available:   s.current().idx.Catalog(),
		Regions:     s.engine.Regions(),
		Commodities: s.engine.Commodities(),
		MinYear:     constants.MinYear,
		MaxYear:     constants.MaxYear,
	}
}

// Version is the store version of the current snapshot.
func (s *Service) Version() uint64 {
	return s.current().version
}

func (s *Service) query(ctx context.Context, snap *snapshot, filter domain.CommodityFilter) []*domain.Commodity {
	plan := analytics.PlanFor(filter)
	metrics.QueriesTotal.WithLabelValues(plan.String()).Inc()
	logger.Debugf(ctx, "resolve filter: plan-%s, version-%d", plan, snap.version)

	return s.engine.Query(snap.idx, filter)
}
