package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/Champion/internal/ranking"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const rosterColumns = `roster_id, name, competitors, created_at, updated_at`

func (s *PostgresStore) CreateRoster(ctx context.Context, roster *Roster) error {
	competitorsJSON, err := marshalCompetitors(roster.Competitors)
	if err != nil {
		return err
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO champion_rosters (name, competitors)
		VALUES ($1, $2)
		RETURNING roster_id, created_at, updated_at`,
		roster.Name, competitorsJSON,
	).Scan(&roster.ID, &roster.CreatedAt, &roster.UpdatedAt)
}

func (s *PostgresStore) GetRoster(ctx context.Context, id uuid.UUID) (*Roster, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+rosterColumns+`
		FROM champion_rosters WHERE roster_id = $1`, id)
	r, err := scanRoster(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostgresStore) ListRosters(ctx context.Context, limit, offset int) ([]*Roster, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+rosterColumns+`
		FROM champion_rosters
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rosters []*Roster
	for rows.Next() {
		r, err := scanRoster(rows)
		if err != nil {
			return nil, err
		}
		rosters = append(rosters, r)
	}
	return rosters, rows.Err()
}

func (s *PostgresStore) UpdateRoster(ctx context.Context, roster *Roster) error {
	competitorsJSON, err := marshalCompetitors(roster.Competitors)
	if err != nil {
		return err
	}
	err = s.pool.QueryRow(ctx, `
		UPDATE champion_rosters SET name = $2, competitors = $3, updated_at = now()
		WHERE roster_id = $1
		RETURNING created_at, updated_at`,
		roster.ID, roster.Name, competitorsJSON,
	).Scan(&roster.CreatedAt, &roster.UpdatedAt)
	if err == pgx.ErrNoRows {
		return ErrNotFound
	}
	return err
}

// DeleteRoster removes the roster and, via ON DELETE CASCADE, its runs.
func (s *PostgresStore) DeleteRoster(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM champion_rosters WHERE roster_id = $1`, id)
	return err
}

const runColumns = `run_id, roster_id, source, tie_policy, champion, tied_champions, competitor_count, created_at`

func (s *PostgresStore) CreateRun(ctx context.Context, run *RankingRun) error {
	championJSON, err := json.Marshal(run.Champion)
	if err != nil {
		return fmt.Errorf("marshal champion: %w", err)
	}
	tiedJSON, err := marshalCompetitors(run.TiedChampions)
	if err != nil {
		return err
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO champion_runs (roster_id, source, tie_policy, champion, tied_champions, competitor_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING run_id, created_at`,
		run.RosterID, run.Source, run.TiePolicy, championJSON, tiedJSON, run.CompetitorCount,
	).Scan(&run.ID, &run.CreatedAt)
}

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*RankingRun, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+runColumns+`
		FROM champion_runs WHERE run_id = $1`, id)
	run, err := scanRun(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]*RankingRun, error) {
	query := `SELECT ` + runColumns + ` FROM champion_runs WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.RosterID != nil {
		n++
		query += fmt.Sprintf(" AND roster_id = $%d", n)
		args = append(args, *filter.RosterID)
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*RankingRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *PostgresStore) LatestRun(ctx context.Context, rosterID uuid.UUID) (*RankingRun, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+runColumns+`
		FROM champion_runs WHERE roster_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, rosterID)
	run, err := scanRun(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM champion_rosters),
			(SELECT COUNT(*) FROM champion_runs),
			(SELECT COUNT(*) FROM champion_runs WHERE jsonb_array_length(tied_champions) > 0)`,
	).Scan(&stats.TotalRosters, &stats.TotalRuns, &stats.TiedRuns)
	return stats, err
}

func scanRoster(row pgx.Row) (*Roster, error) {
	r := &Roster{}
	var competitorsJSON []byte
	if err := row.Scan(&r.ID, &r.Name, &competitorsJSON, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if err := unmarshalCompetitors(competitorsJSON, &r.Competitors); err != nil {
		return nil, fmt.Errorf("roster %s: %w", r.ID, err)
	}
	return r, nil
}

func scanRun(row pgx.Row) (*RankingRun, error) {
	run := &RankingRun{}
	var championJSON, tiedJSON []byte
	if err := row.Scan(
		&run.ID, &run.RosterID, &run.Source, &run.TiePolicy,
		&championJSON, &tiedJSON, &run.CompetitorCount, &run.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(championJSON, &run.Champion); err != nil {
		return nil, fmt.Errorf("run %s: decode champion: %w", run.ID, err)
	}
	if err := unmarshalCompetitors(tiedJSON, &run.TiedChampions); err != nil {
		return nil, fmt.Errorf("run %s: %w", run.ID, err)
	}
	return run, nil
}

func marshalCompetitors(cs []ranking.Competitor) ([]byte, error) {
	if cs == nil {
		cs = []ranking.Competitor{}
	}
	data, err := json.Marshal(cs)
	if err != nil {
		return nil, fmt.Errorf("marshal competitors: %w", err)
	}
	return data, nil
}

func unmarshalCompetitors(data []byte, cs *[]ranking.Competitor) error {
	*cs = []ranking.Competitor{}
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, cs); err != nil {
		return fmt.Errorf("decode competitors: %w", err)
	}
	return nil
}
