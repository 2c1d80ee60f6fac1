package stats

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/pomodoro/domain"
	"github.com/fastygo/pomodoro/pkg/clock"
	"github.com/fastygo/pomodoro/repository"
)

const (
	// Days is the length of the trailing window, today included.
	Days = 7

	labelLayout = "01/02"
)

type UseCase struct {
	store    repository.Store
	cache    repository.StatsCache
	clock    clock.Clock
	location *time.Location
	logger   *zap.Logger
}

func New(store repository.Store, cache repository.StatsCache, clk clock.Clock, loc *time.Location, logger *zap.Logger) *UseCase {
	if clk == nil {
		clk = clock.Real()
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		store:    store,
		cache:    cache,
		clock:    clk,
		location: loc,
		logger:   logger,
	}
}

// Get returns per-day completion counts for the last seven calendar days,
// oldest first and zero-filled, plus the five most recent completions.
func (uc *UseCase) Get(ctx context.Context, userID int64) (*domain.Stats, error) {
	days := window(uc.clock.Now().In(uc.location))
	today := domain.CalendarDate(days[len(days)-1])

	if cached := uc.fromCache(ctx, userID, today); cached != nil {
		return cached, nil
	}
	// read before the query so a completion committed meanwhile
	// invalidates this result instead of being hidden by it
	gen, cacheable := uc.generation(ctx, userID)

	var (
		counts []domain.DailyCount
		recent []domain.CompletedTask
	)
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			return err
		}
		var err error
		if counts, err = tx.CompletedTasks().CountSince(ctx, userID, domain.CalendarDate(days[0])); err != nil {
			return err
		}
		recent, err = tx.CompletedTasks().Recent(ctx, userID, repository.RecentLimit)
		return err
	})
	if err != nil {
		return nil, domain.Persistence("get stats", err)
	}

	stats := build(days, counts, recent)
	if cacheable {
		if err := uc.cache.Set(ctx, userID, today, gen, stats); err != nil {
			uc.logger.Warn("stats cache write failed", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	return stats, nil
}

// History returns every completed task of the user, newest first.
func (uc *UseCase) History(ctx context.Context, userID int64) ([]domain.CompletedTask, error) {
	var tasks []domain.CompletedTask
	err := uc.store.WithTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			return err
		}
		var err error
		tasks, err = tx.CompletedTasks().Recent(ctx, userID, 0)
		return err
	})
	if err != nil {
		return nil, domain.Persistence("get history", err)
	}
	return tasks, nil
}

func (uc *UseCase) fromCache(ctx context.Context, userID int64, day string) *domain.Stats {
	if uc.cache == nil {
		return nil
	}
	cached, err := uc.cache.Get(ctx, userID, day)
	if err != nil {
		uc.logger.Warn("stats cache read failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil
	}
	return cached
}

func (uc *UseCase) generation(ctx context.Context, userID int64) (int64, bool) {
	if uc.cache == nil {
		return 0, false
	}
	gen, err := uc.cache.Generation(ctx, userID)
	if err != nil {
		uc.logger.Warn("stats cache generation read failed", zap.Int64("user_id", userID), zap.Error(err))
		return 0, false
	}
	return gen, true
}

// window returns the Days calendar days ending on now's date. Each day is
// pinned to noon so daylight-saving shifts never move it across midnight.
func window(now time.Time) []time.Time {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 12, 0, 0, 0, now.Location())

	days := make([]time.Time, Days)
	for i := range days {
		days[i] = today.AddDate(0, 0, i-(Days-1))
	}
	return days
}

func build(days []time.Time, counts []domain.DailyCount, recent []domain.CompletedTask) *domain.Stats {
	byDate := make(map[string]int, len(counts))
	for _, c := range counts {
		byDate[c.Date] += c.Count
	}

	stats := &domain.Stats{
		ChartLabels: make([]string, len(days)),
		ChartData:   make([]int, len(days)),
		RecentTasks: make([]domain.CompletedTask, 0, len(recent)),
	}
	for i, day := range days {
		stats.ChartLabels[i] = day.Format(labelLayout)
		stats.ChartData[i] = byDate[domain.CalendarDate(day)]
	}
	stats.RecentTasks = append(stats.RecentTasks, recent...)
	return stats
}
