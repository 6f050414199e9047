package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/domain/models"
)

// Day arguments are passed as DATE parameters so that "today" is decided by the
// application calendar rather than the database session timezone.
var (
	countLambsSQL = `SELECT COUNT(*) FROM lambs`

	countWeanersSQL = fmt.Sprintf(`
		SELECT COUNT(*) FROM branding
		WHERE dob IS NOT NULL
		  AND $1::date - dob >= %d
		  AND $1::date - dob < %d`, models.WeanerFromDays, models.HoggetFromDays)

	// Hoggets and adults use whole calendar years since branding.
	countHoggetsSQL = `
		SELECT COUNT(*) FROM branding
		WHERE EXTRACT(YEAR FROM AGE($1::date, branding_date)) = 1`

	countAdultsSQL = `
		SELECT COUNT(*) FROM branding
		WHERE EXTRACT(YEAR FROM AGE($1::date, branding_date)) >= 2`

	countDeathsSinceSQL    = `SELECT COUNT(*) FROM mortality WHERE date_of_death >= $1::date`
	countDeathsSQL         = `SELECT COUNT(*) FROM mortality`
	countTransfersSinceSQL = `SELECT COUNT(*) FROM transfers WHERE transfer_date >= $1::date`

	livingCensusSQL = `
		SELECT f.name, b.gender, b.dob
		FROM branding b
		JOIN farms f ON f.id = b.farm_id
		WHERE b.current_status = $1
		ORDER BY f.name ASC`
)

// DashboardRepository runs the read-only aggregate queries behind the dashboard.
type DashboardRepository struct {
	db     Querier
	logger *zap.Logger
}

// NewDashboardRepository wires a dashboard repository on the shared pool.
func NewDashboardRepository(db Querier, logger *zap.Logger) *DashboardRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardRepository{db: db, logger: logger}
}

func (r *DashboardRepository) CountLambs(ctx context.Context) (int64, error) {
	return r.count(ctx, "lambs", countLambsSQL)
}

func (r *DashboardRepository) CountWeaners(ctx context.Context, today time.Time) (int64, error) {
	return r.count(ctx, "branding", countWeanersSQL, dateArg(today))
}

func (r *DashboardRepository) CountHoggets(ctx context.Context, today time.Time) (int64, error) {
	return r.count(ctx, "branding", countHoggetsSQL, dateArg(today))
}

func (r *DashboardRepository) CountAdults(ctx context.Context, today time.Time) (int64, error) {
	return r.count(ctx, "branding", countAdultsSQL, dateArg(today))
}

func (r *DashboardRepository) CountDeathsSince(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, "mortality", countDeathsSinceSQL, dateArg(since))
}

func (r *DashboardRepository) CountDeaths(ctx context.Context) (int64, error) {
	return r.count(ctx, "mortality", countDeathsSQL)
}

func (r *DashboardRepository) CountTransfersSince(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, "transfers", countTransfersSinceSQL, dateArg(since))
}

// LivingCensus returns one entry per Alive branding record that belongs to a farm, ordered by farm name.
func (r *DashboardRepository) LivingCensus(ctx context.Context) (out []models.CensusEntry, err error) {
	defer observe("census", "branding", time.Now(), &err)

	rows, err := r.db.Query(ctx, livingCensusSQL, models.StatusAlive)
	if err != nil {
		return nil, fmt.Errorf("query living census: %w", err)
	}

	out, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CensusEntry, error) {
		var (
			entry    models.CensusEntry
			farmName *string
		)
		if err := row.Scan(&farmName, &entry.Gender, &entry.DOB); err != nil {
			return entry, err
		}
		if farmName != nil {
			entry.FarmName = *farmName
		}
		return entry, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan living census: %w", err)
	}
	return out, nil
}

func (r *DashboardRepository) count(ctx context.Context, table, query string, args ...any) (n int64, err error) {
	defer observe("count", table, time.Now(), &err)

	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// dateArg strips the clock and location so the parameter encodes as the intended calendar day.
func dateArg(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
