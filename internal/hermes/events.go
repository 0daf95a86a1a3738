package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/Champion/internal/ranking"
)

// RankRequestEvent asks the service to rank either a stored roster or an
// inline list of competitors. RosterID wins when both are set.
type RankRequestEvent struct {
	RosterID    string               `json:"roster_id,omitempty"`
	Competitors []ranking.Competitor `json:"competitors,omitempty"`
	Source      string               `json:"source,omitempty"`
}

type RosterEvent struct {
	RosterID        string `json:"roster_id"`
	Name            string `json:"name,omitempty"`
	CompetitorCount int    `json:"competitor_count"`
}

type RankingCompletedEvent struct {
	RunID           string               `json:"run_id"`
	RosterID        string               `json:"roster_id,omitempty"`
	Source          string               `json:"source"`
	TiePolicy       string               `json:"tie_policy"`
	Champion        ranking.Competitor   `json:"champion"`
	TiedChampions   []ranking.Competitor `json:"tied_champions"`
	CompetitorCount int                  `json:"competitor_count"`
}

type ChampionChangedEvent struct {
	RosterID         string             `json:"roster_id"`
	RunID            string             `json:"run_id"`
	PreviousChampion ranking.Competitor `json:"previous_champion"`
	Champion         ranking.Competitor `json:"champion"`
}

type StatsEvent struct {
	Rosters   int       `json:"rosters"`
	Runs      int       `json:"runs"`
	TiedRuns  int       `json:"tied_runs"`
	Timestamp time.Time `json:"timestamp"`
}
