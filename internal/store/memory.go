package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Champion/internal/ranking"
)

// MemoryStore keeps rosters and runs in process memory. It backs the service
// when no database is configured. Values are copied in and out so callers
// never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	rosters map[uuid.UUID]*Roster
	runs    map[uuid.UUID]*RankingRun

	// seq orders rows by insertion; timestamps can collide.
	seq  map[uuid.UUID]uint64
	next uint64
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rosters: make(map[uuid.UUID]*Roster),
		runs:    make(map[uuid.UUID]*RankingRun),
		seq:     make(map[uuid.UUID]uint64),
		now:     time.Now,
	}
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) CreateRoster(_ context.Context, roster *Roster) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	roster.ID = uuid.New()
	roster.CreatedAt = now
	roster.UpdatedAt = now
	m.rosters[roster.ID] = copyRoster(roster)
	m.track(roster.ID)
	return nil
}

func (m *MemoryStore) GetRoster(_ context.Context, id uuid.UUID) (*Roster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rosters[id]
	if !ok {
		return nil, nil
	}
	return copyRoster(r), nil
}

func (m *MemoryStore) ListRosters(_ context.Context, limit, offset int) ([]*Roster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*Roster, 0, len(m.rosters))
	for _, r := range m.rosters {
		all = append(all, copyRoster(r))
	}
	sort.Slice(all, func(i, j int) bool { return m.seq[all[i].ID] < m.seq[all[j].ID] })
	if limit <= 0 {
		limit = 100
	}
	return page(all, limit, offset), nil
}

func (m *MemoryStore) UpdateRoster(_ context.Context, roster *Roster) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.rosters[roster.ID]
	if !ok {
		return ErrNotFound
	}
	roster.CreatedAt = existing.CreatedAt
	roster.UpdatedAt = m.now()
	m.rosters[roster.ID] = copyRoster(roster)
	return nil
}

func (m *MemoryStore) DeleteRoster(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.rosters, id)
	delete(m.seq, id)
	for runID, run := range m.runs {
		if run.RosterID != nil && *run.RosterID == id {
			delete(m.runs, runID)
			delete(m.seq, runID)
		}
	}
	return nil
}

func (m *MemoryStore) CreateRun(_ context.Context, run *RankingRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run.ID = uuid.New()
	run.CreatedAt = m.now()
	m.runs[run.ID] = copyRun(run)
	m.track(run.ID)
	return nil
}

func (m *MemoryStore) GetRun(_ context.Context, id uuid.UUID) (*RankingRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id]
	if !ok {
		return nil, nil
	}
	return copyRun(run), nil
}

// ListRuns returns newest runs first.
func (m *MemoryStore) ListRuns(_ context.Context, filter RunFilter) ([]*RankingRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	return page(m.runsFor(filter.RosterID), limit, filter.Offset), nil
}

func (m *MemoryStore) LatestRun(_ context.Context, rosterID uuid.UUID) (*RankingRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := m.runsFor(&rosterID)
	if len(runs) == 0 {
		return nil, nil
	}
	return runs[0], nil
}

func (m *MemoryStore) GetStats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &Stats{TotalRosters: len(m.rosters), TotalRuns: len(m.runs)}
	for _, run := range m.runs {
		if len(run.TiedChampions) > 0 {
			stats.TiedRuns++
		}
	}
	return stats, nil
}

func (m *MemoryStore) track(id uuid.UUID) {
	m.next++
	m.seq[id] = m.next
}

// runsFor returns matching runs newest first. Callers hold mu.
func (m *MemoryStore) runsFor(rosterID *uuid.UUID) []*RankingRun {
	var out []*RankingRun
	for _, run := range m.runs {
		if rosterID != nil && (run.RosterID == nil || *run.RosterID != *rosterID) {
			continue
		}
		out = append(out, copyRun(run))
	}
	sort.Slice(out, func(i, j int) bool { return m.seq[out[i].ID] > m.seq[out[j].ID] })
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func copyRoster(r *Roster) *Roster {
	cp := *r
	cp.Competitors = append([]ranking.Competitor{}, r.Competitors...)
	return &cp
}

func copyRun(run *RankingRun) *RankingRun {
	cp := *run
	cp.TiedChampions = append([]ranking.Competitor{}, run.TiedChampions...)
	if run.RosterID != nil {
		id := *run.RosterID
		cp.RosterID = &id
	}
	return &cp
}
