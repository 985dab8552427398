package store

import (
	"slices"

	"github.com/google/uuid"

	"github.com/ougirez/agristat/internal/domain"
	"github.com/ougirez/agristat/internal/domain/dto"
)

// Store keeps the record collection. Every mutation publishes a new slice,
// so a collection returned by List is never changed afterwards. Implementations
// are not safe for concurrent writers.
type Store interface {
	Create(data dto.CommodityDto) *domain.Commodity
	Update(id string, patch dto.CommodityPatch) (*domain.Commodity, bool)
	Delete(id string) bool
	Get(id string) (*domain.Commodity, bool)
	List() []*domain.Commodity
	Replace(records []*domain.Commodity)
	Version() uint64
}

type MemOption func(*memStore)

// WithIDGenerator overrides the uuid generator used by Create.
func WithIDGenerator(gen func() string) MemOption {
	return func(s *memStore) {
		s.newID = gen
	}
}

// WithRecords preloads the store.
func WithRecords(records []*domain.Commodity) MemOption {
	return func(s *memStore) {
		s.records = compact(records)
	}
}

type memStore struct {
	records []*domain.Commodity
	version uint64
	newID   func() string
}

func NewMemStore(opts ...MemOption) Store {
	s := &memStore{
		records: make([]*domain.Commodity, 0),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *memStore) Create(data dto.CommodityDto) *domain.Commodity {
	c := data.ToDomain(s.newID())

	next := make([]*domain.Commodity, 0, len(s.records)+1)
	next = append(next, s.records...)
	s.publish(append(next, c))

	return c
}

func (s *memStore) Update(id string, patch dto.CommodityPatch) (*domain.Commodity, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}

	updated := patch.Apply(*s.records[i])
	updated.ID = id

	next := slices.Clone(s.records)
	next[i] = &updated
	s.publish(next)

	return &updated, true
}

func (s *memStore) Delete(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	next := make([]*domain.Commodity, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)
	s.publish(next)

	return true
}

func (s *memStore) Get(id string) (*domain.Commodity, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.records[i], true
}

func (s *memStore) List() []*domain.Commodity {
	return s.records
}

func (s *memStore) Replace(records []*domain.Commodity) {
	s.publish(compact(records))
}

func (s *memStore) Version() uint64 {
	return s.version
}

func (s *memStore) publish(records []*domain.Commodity) {
	s.records = records
	s.version++
}

func (s *memStore) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(c *domain.Commodity) bool {
		return c.ID == id
	})
}

func compact(records []*domain.Commodity) []*domain.Commodity {
	out := make([]*domain.Commodity, 0, len(records))
	for _, c := range records {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
