package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Champion/internal/ranking"
)

// Roster is a named, ordered list of competitors. Order is significant: it is
// the order the ranking fold sees.
type Roster struct {
	ID          uuid.UUID            `json:"roster_id"`
	Name        string               `json:"name"`
	Competitors []ranking.Competitor `json:"competitors"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// RankingRun is a persisted ranking outcome. RosterID is nil for ad hoc
// rankings.
type RankingRun struct {
	ID              uuid.UUID            `json:"run_id"`
	RosterID        *uuid.UUID           `json:"roster_id,omitempty"`
	Source          string               `json:"source"`
	TiePolicy       string               `json:"tie_policy"`
	Champion        ranking.Competitor   `json:"champion"`
	TiedChampions   []ranking.Competitor `json:"tied_champions"`
	CompetitorCount int                  `json:"competitor_count"`
	CreatedAt       time.Time            `json:"created_at"`
}

type RunFilter struct {
	RosterID *uuid.UUID
	Limit    int
	Offset   int
}

type Stats struct {
	TotalRosters int `json:"total_rosters"`
	TotalRuns    int `json:"total_runs"`
	TiedRuns     int `json:"tied_runs"`
}

// ErrNotFound is returned by updates of a row that does not exist.
var ErrNotFound = errors.New("not found")

// Get methods return nil, nil when the row does not exist.
type Store interface {
	CreateRoster(ctx context.Context, roster *Roster) error
	GetRoster(ctx context.Context, id uuid.UUID) (*Roster, error)
	ListRosters(ctx context.Context, limit, offset int) ([]*Roster, error)
	UpdateRoster(ctx context.Context, roster *Roster) error
	DeleteRoster(ctx context.Context, id uuid.UUID) error

	CreateRun(ctx context.Context, run *RankingRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*RankingRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*RankingRun, error)
	LatestRun(ctx context.Context, rosterID uuid.UUID) (*RankingRun, error)

	GetStats(ctx context.Context) (*Stats, error)

	Close() error
}
