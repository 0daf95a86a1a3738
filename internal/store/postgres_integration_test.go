//go:build integration

package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Champion/internal/ranking"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE champion_runs CASCADE")
		_, _ = s.pool.Exec(ctx, "TRUNCATE champion_rosters CASCADE")
		s.Close()
	})

	return s
}

func TestPostgresRosterRoundTrip(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	roster := &Roster{
		Name: "Integration roster",
		Competitors: []ranking.Competitor{
			{Strength: 3100, Age: 33, Name: "Sherlock"},
			{Strength: 700, Age: 30, Name: "Félix"},
		},
	}
	if err := s.CreateRoster(ctx, roster); err != nil {
		t.Fatalf("CreateRoster failed: %v", err)
	}
	if roster.ID == uuid.Nil {
		t.Fatal("expected non-nil roster ID after create")
	}

	got, err := s.GetRoster(ctx, roster.ID)
	if err != nil {
		t.Fatalf("GetRoster failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected roster, got nil")
	}
	if len(got.Competitors) != 2 || got.Competitors[1].Name != "Félix" {
		t.Errorf("competitors did not round-trip: %+v", got.Competitors)
	}

	got.Name = "Renamed"
	if err := s.UpdateRoster(ctx, got); err != nil {
		t.Fatalf("UpdateRoster failed: %v", err)
	}
	if err := s.UpdateRoster(ctx, &Roster{ID: uuid.New(), Name: "ghost"}); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for missing roster, got %v", err)
	}

	missing, err := s.GetRoster(ctx, uuid.New())
	if err != nil {
		t.Fatalf("GetRoster for missing id failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing roster")
	}
}

func TestPostgresRunsAndStats(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	roster := &Roster{Name: "tie", Competitors: []ranking.Competitor{
		{Strength: 3000, Age: 30, Name: "Kareem"},
		{Strength: 3000, Age: 30, Name: "Lebron"},
	}}
	if err := s.CreateRoster(ctx, roster); err != nil {
		t.Fatalf("CreateRoster failed: %v", err)
	}

	first := &RankingRun{
		RosterID:        &roster.ID,
		Source:          "api",
		TiePolicy:       "strict",
		Champion:        roster.Competitors[0],
		TiedChampions:   roster.Competitors,
		CompetitorCount: 2,
	}
	second := &RankingRun{
		RosterID:        &roster.ID,
		Source:          "hermes",
		TiePolicy:       "retain",
		Champion:        roster.Competitors[0],
		CompetitorCount: 2,
	}
	for _, run := range []*RankingRun{first, second} {
		if err := s.CreateRun(ctx, run); err != nil {
			t.Fatalf("CreateRun failed: %v", err)
		}
	}

	latest, err := s.LatestRun(ctx, roster.ID)
	if err != nil {
		t.Fatalf("LatestRun failed: %v", err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Fatalf("expected latest run %s, got %+v", second.ID, latest)
	}

	runs, err := s.ListRuns(ctx, RunFilter{RosterID: &roster.ID})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if len(runs[1].TiedChampions) != 2 {
		t.Errorf("expected tied champions to round-trip, got %+v", runs[1].TiedChampions)
	}

	stats, err := s.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalRosters != 1 || stats.TotalRuns != 2 || stats.TiedRuns != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if err := s.DeleteRoster(ctx, roster.ID); err != nil {
		t.Fatalf("DeleteRoster failed: %v", err)
	}
	gone, err := s.GetRun(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if gone != nil {
		t.Error("expected runs to be deleted with their roster")
	}
}
