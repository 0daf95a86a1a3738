package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Champion/internal/config"
	"github.com/MikeSquared-Agency/Champion/internal/hermes"
	"github.com/MikeSquared-Agency/Champion/internal/metrics"
	"github.com/MikeSquared-Agency/Champion/internal/ranking"
	"github.com/MikeSquared-Agency/Champion/internal/store"
)

var (
	ErrRosterNotFound     = errors.New("roster not found")
	ErrTooManyCompetitors = errors.New("too many competitors")
)

// Sources recorded on ranking runs.
const (
	SourceAPI    = "api"
	SourceHermes = "hermes"
)

// Broker ranks rosters and ad hoc competitor lists, persists every run and
// announces results on hermes. hermes may be nil.
type Broker struct {
	store  store.Store
	hermes hermes.Client
	ranker *ranking.Ranker
	cfg    *config.Config
	logger *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, h hermes.Client, cfg *config.Config, logger *slog.Logger) *Broker {
	return &Broker{
		store:  s,
		hermes: h,
		ranker: ranking.NewRanker(cfg.TiePolicy()),
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}
}

func (b *Broker) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.statsLoop(ctx)
}

func (b *Broker) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
	b.wg.Wait()
}

// Ranker exposes the configured ranker for read-only callers.
func (b *Broker) Ranker() *ranking.Ranker {
	return b.ranker
}

// RankCompetitors ranks an inline list and records it as an ad hoc run.
func (b *Broker) RankCompetitors(ctx context.Context, competitors []ranking.Competitor, source string) (*store.RankingRun, []ranking.Step, error) {
	if err := b.CheckSize(competitors); err != nil {
		return nil, nil, err
	}
	return b.rank(ctx, nil, competitors, source)
}

// RankRoster ranks a stored roster. When the champion differs from the
// roster's previous run a champion_changed event is published.
func (b *Broker) RankRoster(ctx context.Context, rosterID uuid.UUID, source string) (*store.RankingRun, []ranking.Step, error) {
	roster, err := b.getRoster(ctx, rosterID)
	if err != nil {
		return nil, nil, err
	}

	previous, err := b.store.LatestRun(ctx, rosterID)
	if err != nil {
		return nil, nil, fmt.Errorf("latest run: %w", err)
	}

	run, steps, err := b.rank(ctx, &roster.ID, roster.Competitors, source)
	if err != nil {
		return nil, nil, err
	}

	if previous != nil && previous.Champion != run.Champion {
		b.logger.Info("champion changed",
			"roster_id", rosterID,
			"previous", previous.Champion.Name,
			"champion", run.Champion.Name,
		)
		b.publish(hermes.SubjectChampionChanged(rosterID.String()), hermes.ChampionChangedEvent{
			RosterID:         rosterID.String(),
			RunID:            run.ID.String(),
			PreviousChampion: previous.Champion,
			Champion:         run.Champion,
		})
	}
	return run, steps, nil
}

// ExplainRoster replays the fold over a roster without recording a run.
func (b *Broker) ExplainRoster(ctx context.Context, rosterID uuid.UUID) (ranking.Result, []ranking.Step, error) {
	roster, err := b.getRoster(ctx, rosterID)
	if err != nil {
		return ranking.Result{}, nil, err
	}
	res, steps := b.ranker.Explain(roster.Competitors)
	return res, steps, nil
}

// RosterContenders returns the Pareto frontier of a roster.
func (b *Broker) RosterContenders(ctx context.Context, rosterID uuid.UUID) ([]ranking.Competitor, error) {
	roster, err := b.getRoster(ctx, rosterID)
	if err != nil {
		return nil, err
	}
	return ranking.Contenders(roster.Competitors), nil
}

func (b *Broker) rank(ctx context.Context, rosterID *uuid.UUID, competitors []ranking.Competitor, source string) (*store.RankingRun, []ranking.Step, error) {
	start := time.Now()
	res, steps := b.ranker.Explain(competitors)
	metrics.ObserveRanking(source, res, steps, time.Since(start))

	run := &store.RankingRun{
		RosterID:        rosterID,
		Source:          source,
		TiePolicy:       string(b.ranker.Policy()),
		Champion:        res.Champion,
		TiedChampions:   res.TiedChampions.Members(),
		CompetitorCount: len(competitors),
	}
	if err := b.store.CreateRun(ctx, run); err != nil {
		return nil, nil, fmt.Errorf("create run: %w", err)
	}

	b.logger.Info("ranking completed",
		"run_id", run.ID,
		"roster_id", rosterID,
		"source", source,
		"competitors", run.CompetitorCount,
		"champion", run.Champion.Name,
		"tied", len(run.TiedChampions),
	)

	evt := hermes.RankingCompletedEvent{
		RunID:           run.ID.String(),
		Source:          run.Source,
		TiePolicy:       run.TiePolicy,
		Champion:        run.Champion,
		TiedChampions:   run.TiedChampions,
		CompetitorCount: run.CompetitorCount,
	}
	if rosterID != nil {
		evt.RosterID = rosterID.String()
	}
	b.publish(hermes.SubjectRankingCompleted(run.ID.String()), evt)

	return run, steps, nil
}

func (b *Broker) getRoster(ctx context.Context, rosterID uuid.UUID) (*store.Roster, error) {
	roster, err := b.store.GetRoster(ctx, rosterID)
	if err != nil {
		return nil, fmt.Errorf("get roster: %w", err)
	}
	if roster == nil {
		return nil, ErrRosterNotFound
	}
	return roster, nil
}

// CheckSize reports ErrTooManyCompetitors for lists above the configured
// limit. Roster writes go through it before reaching the store.
func (b *Broker) CheckSize(competitors []ranking.Competitor) error {
	if limit := b.cfg.Ranking.MaxCompetitors; limit > 0 && len(competitors) > limit {
		return fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyCompetitors, len(competitors), limit)
	}
	return nil
}

// RosterCreated, RosterUpdated and RosterDeleted announce roster changes.
func (b *Broker) RosterCreated(r *store.Roster) {
	b.publish(hermes.SubjectRosterCreated(r.ID.String()), rosterEvent(r))
}

func (b *Broker) RosterUpdated(r *store.Roster) {
	b.publish(hermes.SubjectRosterUpdated(r.ID.String()), rosterEvent(r))
}

func (b *Broker) RosterDeleted(id uuid.UUID) {
	b.publish(hermes.SubjectRosterDeleted(id.String()), hermes.RosterEvent{RosterID: id.String()})
}

func rosterEvent(r *store.Roster) hermes.RosterEvent {
	return hermes.RosterEvent{
		RosterID:        r.ID.String(),
		Name:            r.Name,
		CompetitorCount: len(r.Competitors),
	}
}

func (b *Broker) publish(subject string, data interface{}) {
	if b.hermes == nil {
		return
	}
	if err := b.hermes.Publish(subject, data); err != nil {
		b.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

// SetupSubscriptions ranks champion.rank.request events from hermes.
func (b *Broker) SetupSubscriptions(ctx context.Context) {
	if b.hermes == nil {
		return
	}

	err := b.hermes.Subscribe(hermes.SubjectRankRequest, func(_ string, data []byte) {
		b.handleRankRequest(ctx, data)
	})
	if err != nil {
		b.logger.Error("failed to subscribe to rank requests", "error", err)
	}
}

func (b *Broker) handleRankRequest(ctx context.Context, data []byte) {
	var req hermes.RankRequestEvent
	if err := json.Unmarshal(data, &req); err != nil {
		b.logger.Warn("invalid rank request event", "error", err)
		return
	}
	source := req.Source
	if source == "" {
		source = SourceHermes
	}

	if req.RosterID != "" {
		id, err := uuid.Parse(req.RosterID)
		if err != nil {
			b.logger.Warn("invalid roster id in rank request", "roster_id", req.RosterID, "error", err)
			return
		}
		if _, _, err := b.RankRoster(ctx, id, source); err != nil {
			b.logger.Warn("rank request failed", "roster_id", req.RosterID, "error", err)
		}
		return
	}

	if _, _, err := b.RankCompetitors(ctx, req.Competitors, source); err != nil {
		b.logger.Warn("rank request failed", "competitors", len(req.Competitors), "error", err)
	}
}

func (b *Broker) statsLoop(ctx context.Context) {
	defer b.wg.Done()
	ticker := time.NewTicker(b.cfg.StatsInterval())
	defer ticker.Stop()

	for {
		select {
		case <-b.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.publishStats(ctx)
		}
	}
}

func (b *Broker) publishStats(ctx context.Context) {
	stats, err := b.store.GetStats(ctx)
	if err != nil {
		b.logger.Error("failed to get stats", "error", err)
		return
	}
	b.logger.Debug("ranking stats", "rosters", stats.TotalRosters, "runs", stats.TotalRuns, "tied_runs", stats.TiedRuns)
	b.publish(hermes.SubjectStats, hermes.StatsEvent{
		Rosters:   stats.TotalRosters,
		Runs:      stats.TotalRuns,
		TiedRuns:  stats.TiedRuns,
		Timestamp: time.Now().UTC(),
	})
}
