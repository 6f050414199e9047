package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/domain/apperrors"
	"github.com/mamadbah2/flockbook/internal/domain/models"
)

// stubQuerier records statements and answers Exec with a fixed command tag.
type stubQuerier struct {
	tag      pgconn.CommandTag
	err      error
	lastSQL  string
	lastArgs []any
}

func (s *stubQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.lastSQL, s.lastArgs = sql, args
	return nil, s.err
}

func (s *stubQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.lastSQL, s.lastArgs = sql, args
	return errRow{err: s.err}
}

func (s *stubQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.lastSQL, s.lastArgs = sql, args
	return s.tag, s.err
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func TestNewResource_Statements(t *testing.T) {
	r := NewResource(nil, FarmsTable, zap.NewNop())

	assert.Equal(t,
		`SELECT id, name, location, manager_name, contact_info FROM "farms" ORDER BY id DESC`,
		r.listSQL)
	assert.Equal(t,
		`INSERT INTO "farms" (name, location, manager_name, contact_info) VALUES ($1, $2, $3, $4) RETURNING id, name, location, manager_name, contact_info`,
		r.insertSQL)
	assert.Equal(t,
		`UPDATE "farms" SET name = $1, location = $2, manager_name = $3, contact_info = $4 WHERE id = $5 RETURNING id, name, location, manager_name, contact_info`,
		r.updateSQL)
	assert.Equal(t, `DELETE FROM "farms" WHERE id = $1`, r.deleteSQL)
}

func TestTables_ValuesMatchColumns(t *testing.T) {
	assert.Len(t, FarmsTable.Values(&models.Farm{}), len(FarmsTable.Columns))
	assert.Len(t, BreedsTable.Values(&models.Breed{}), len(BreedsTable.Columns))
	assert.Len(t, BrandingTable.Values(&models.BrandingRecord{}), len(BrandingTable.Columns))
	assert.Len(t, LambingsTable.Values(&models.Lambing{}), len(LambingsTable.Columns))
	assert.Len(t, LambsTable.Values(&models.Lamb{}), len(LambsTable.Columns))
	assert.Len(t, GrowthTable.Values(&models.GrowthRecord{}), len(GrowthTable.Columns))
	assert.Len(t, HealthEventsTable.Values(&models.HealthEvent{}), len(HealthEventsTable.Columns))
	assert.Len(t, WoolRecordsTable.Values(&models.WoolRecord{}), len(WoolRecordsTable.Columns))
	assert.Len(t, MortalityTable.Values(&models.MortalityRecord{}), len(MortalityTable.Columns))
	assert.Len(t, TransfersTable.Values(&models.Transfer{}), len(TransfersTable.Columns))
}

func TestResource_DeleteMissingRow(t *testing.T) {
	db := &stubQuerier{tag: pgconn.NewCommandTag("DELETE 0")}
	r := NewResource(db, TransfersTable, nil)

	err := r.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, []any{int64(42)}, db.lastArgs)
}

func TestResource_DeleteExistingRow(t *testing.T) {
	db := &stubQuerier{tag: pgconn.NewCommandTag("DELETE 1")}
	r := NewResource(db, TransfersTable, nil)

	assert.NoError(t, r.Delete(context.Background(), 7))
}

func TestResource_PropagatesGatewayErrors(t *testing.T) {
	boom := &pgconn.PgError{Code: "08006", Message: "connection failure"}
	db := &stubQuerier{err: boom}
	r := NewResource(db, MortalityTable, nil)
	ctx := context.Background()

	_, err := r.List(ctx)
	assert.ErrorIs(t, err, boom)

	tag := "T-1"
	_, err = r.Create(ctx, &models.MortalityRecord{TagNumber: &tag})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, r.insertSQL, db.lastSQL)
	assert.Equal(t, &tag, db.lastArgs[0])

	_, err = r.Update(ctx, 3, &models.MortalityRecord{})
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, int64(3), db.lastArgs[len(db.lastArgs)-1])

	err = r.Delete(ctx, 3)
	assert.ErrorIs(t, err, boom)
}

func TestDashboardRepository_PassesCalendarDays(t *testing.T) {
	db := &stubQuerier{err: errors.New("offline")}
	repo := NewDashboardRepository(db, nil)

	_, err := repo.CountDeathsSince(context.Background(), mustTime(t, "2026-10-01T00:00:00+05:30"))
	require.Error(t, err)
	assert.Equal(t, countDeathsSinceSQL, db.lastSQL)
	assert.Equal(t, "2026-10-01", db.lastArgs[0].(time.Time).Format("2006-01-02"))
}

func TestDashboardRepository_LivingCensusBindsAliveStatus(t *testing.T) {
	db := &stubQuerier{err: errors.New("offline")}
	repo := NewDashboardRepository(db, nil)

	_, err := repo.LivingCensus(context.Background())
	require.Error(t, err)
	assert.Equal(t, livingCensusSQL, db.lastSQL)
	assert.Contains(t, db.lastSQL, "b.current_status = $1")
	require.Len(t, db.lastArgs, 1)
	assert.Equal(t, models.StatusAlive, db.lastArgs[0])
}
