package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/flockbook/internal/domain/models"
)

// Store is the read-only query surface the dashboard depends on.
type Store interface {
	CountLambs(ctx context.Context) (int64, error)
	CountWeaners(ctx context.Context, today time.Time) (int64, error)
	CountHoggets(ctx context.Context, today time.Time) (int64, error)
	CountAdults(ctx context.Context, today time.Time) (int64, error)
	CountDeathsSince(ctx context.Context, since time.Time) (int64, error)
	CountDeaths(ctx context.Context) (int64, error)
	CountTransfersSince(ctx context.Context, since time.Time) (int64, error)
	LivingCensus(ctx context.Context) ([]models.CensusEntry, error)
}

// Service computes the dashboard views. Every call reads the source tables; nothing is cached.
type Service struct {
	store  Store
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a dashboard service. loc is the calendar used for "today" and
// the month cutoff; nil means UTC.
func NewService(store Store, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, logger: logger, now: time.Now}
}

// Today returns the current calendar day in the service location.
func (s *Service) Today() time.Time {
	return s.now().In(s.loc)
}

// MonthStart returns midnight on the first day of the month containing t, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthlySummary runs the seven counts concurrently and combines them once all succeed.
// The first failure cancels the remaining queries and is returned.
func (s *Service) MonthlySummary(ctx context.Context) (models.MonthlySummary, error) {
	today := s.Today()
	cutoff := MonthStart(today)

	var summary models.MonthlySummary
	g, gctx := errgroup.WithContext(ctx)

	run := func(name string, dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = n
			return nil
		})
	}

	run("lambs", &summary.Lambs, s.store.CountLambs)
	run("weaners", &summary.Weaners, func(ctx context.Context) (int64, error) {
		return s.store.CountWeaners(ctx, today)
	})
	run("hoggets", &summary.Hoggets, func(ctx context.Context) (int64, error) {
		return s.store.CountHoggets(ctx, today)
	})
	run("adults", &summary.Adults, func(ctx context.Context) (int64, error) {
		return s.store.CountAdults(ctx, today)
	})
	run("deaths this month", &summary.DeathsThisMonth, func(ctx context.Context) (int64, error) {
		return s.store.CountDeathsSince(ctx, cutoff)
	})
	run("total deaths", &summary.TotalDeaths, s.store.CountDeaths)
	run("transfers this month", &summary.TransfersThisMonth, func(ctx context.Context) (int64, error) {
		return s.store.CountTransfersSince(ctx, cutoff)
	})

	if err := g.Wait(); err != nil {
		return models.MonthlySummary{}, fmt.Errorf("monthly summary: %w", err)
	}

	s.logger.Debug("monthly summary computed",
		zap.Time("cutoff", cutoff),
		zap.Int64("lambs", summary.Lambs),
		zap.Int64("deaths_this_month", summary.DeathsThisMonth))

	return summary, nil
}

// PopulationSummary counts living branded animals per farm by life stage and gender,
// ordered by farm name. Animals without a date of birth only count toward gender.
func (s *Service) PopulationSummary(ctx context.Context) ([]models.FarmPopulation, error) {
	census, err := s.store.LivingCensus(ctx)
	if err != nil {
		return nil, fmt.Errorf("population summary: %w", err)
	}
	return Tally(census, s.Today()), nil
}

// Tally groups census entries by farm name and classifies each animal's age as of today.
func Tally(census []models.CensusEntry, today time.Time) []models.FarmPopulation {
	index := make(map[string]int)
	out := make([]models.FarmPopulation, 0)

	for _, entry := range census {
		i, ok := index[entry.FarmName]
		if !ok {
			i = len(out)
			index[entry.FarmName] = i
			out = append(out, models.FarmPopulation{FarmName: entry.FarmName})
		}
		row := &out[i]

		if entry.DOB != nil {
			switch models.ClassifyAge(*entry.DOB, today) {
			case models.StageLamb:
				row.Lambs++
			case models.StageWeaner:
				row.Weaners++
			case models.StageHogget:
				row.Hoggets++
			case models.StageAdult:
				row.Adults++
			}
		}

		if entry.Gender != nil {
			switch *entry.Gender {
			case models.GenderMale:
				row.Males++
			case models.GenderFemale:
				row.Females++
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].FarmName < out[j].FarmName })
	return out
}
