//go:build integration

package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/domain/apperrors"
	"github.com/mamadbah2/flockbook/internal/domain/models"
)

const testImage = "postgres:16-alpine"

var (
	sharedDB     *DB
	sharedDBOnce sync.Once
	sharedDBErr  error
)

// getTestDB starts one PostgreSQL container per test run and applies the migrations.
func getTestDB(t *testing.T) *DB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedDBOnce.Do(func() {
		sharedDB, sharedDBErr = setupTestDB()
	})
	if sharedDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedDBErr)
	}
	return sharedDB
}

func setupTestDB() (*DB, error) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "flockbook",
				"POSTGRES_USER":     "flock",
				"POSTGRES_PASSWORD": "flock",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	url := fmt.Sprintf("postgres://flock:flock@%s:%s/flockbook?sslmode=disable", host, port.Port())
	if err := RunMigrations(url, zap.NewNop()); err != nil {
		return nil, err
	}
	// A second run must be a no-op.
	if err := RunMigrations(url, zap.NewNop()); err != nil {
		return nil, err
	}

	return NewConnection(ctx, Config{URL: url, MaxConnections: 5})
}

func resetTables(t *testing.T, db *DB) {
	t.Helper()
	_, err := db.Exec(context.Background(), `
		TRUNCATE transfers, mortality, woolrecords, healthevents, growth,
		         lambs, lambings, branding, breeds, farms RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func TestIntegration_FarmLifecycle(t *testing.T) {
	db := getTestDB(t)
	resetTables(t, db)
	ctx := context.Background()
	farms := NewResource(db, FarmsTable, zap.NewNop())

	created, err := farms.Create(ctx, &models.Farm{Name: strPtr("North Field"), Location: strPtr("Ganderbal")})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "North Field", *created.Name)
	assert.Nil(t, created.ManagerName)

	list, err := farms.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])

	updated, err := farms.Update(ctx, created.ID, &models.Farm{Name: strPtr("North Field"), ManagerName: strPtr("Bilal")})
	require.NoError(t, err)
	assert.Equal(t, "Bilal", *updated.ManagerName)
	assert.Nil(t, updated.Location, "update overwrites every editable column")

	_, err = farms.Update(ctx, created.ID+100, &models.Farm{Name: strPtr("ghost")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, farms.Delete(ctx, created.ID))
	assert.ErrorIs(t, farms.Delete(ctx, created.ID), apperrors.ErrNotFound)

	list, err = farms.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestIntegration_DatedRecordsRoundTrip(t *testing.T) {
	db := getTestDB(t)
	resetTables(t, db)
	ctx := context.Background()
	growth := NewResource(db, GrowthTable, zap.NewNop())

	weight := 18.25
	age := int32(120)
	older, err := growth.Create(ctx, &models.GrowthRecord{
		TagNumber: strPtr("T-7"), AgeDays: &age, BodyWeight: &weight,
		RecordedOn: models.MustParseDate("2026-01-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-10", older.RecordedOn.String())
	assert.InDelta(t, 18.25, *older.BodyWeight, 0.001)

	newer, err := growth.Create(ctx, &models.GrowthRecord{
		BrandingID: strPtr("KSH-1"), RecordedOn: models.MustParseDate("2026-02-10"),
	})
	require.NoError(t, err)

	list, err := growth.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID, "ordered by recorded_on descending")
}

func TestIntegration_ForeignKeyViolationIsGatewayError(t *testing.T) {
	db := getTestDB(t)
	resetTables(t, db)
	lambs := NewResource(db, LambsTable, zap.NewNop())

	missing := int64(999)
	_, err := lambs.Create(context.Background(), &models.Lamb{LambingID: &missing})
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "foreign key")
}

func TestIntegration_DashboardQueries(t *testing.T) {
	db := getTestDB(t)
	resetTables(t, db)
	ctx := context.Background()
	repos := NewRepositories(db, zap.NewNop())
	dash := NewDashboardRepository(db, zap.NewNop())

	today := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)

	farm, err := repos.Farms.Create(ctx, &models.Farm{Name: strPtr("North Field")})
	require.NoError(t, err)

	animal := func(status, gender string, daysOld int, brandedYearsAgo int) {
		_, err := repos.Branding.Create(ctx, &models.BrandingRecord{
			FarmID:        &farm.ID,
			Gender:        strPtr(gender),
			CurrentStatus: strPtr(status),
			DOB:           models.NewDate(today.AddDate(0, 0, -daysOld)),
			BrandingDate:  models.NewDate(today.AddDate(-brandedYearsAgo, 0, -1)),
		})
		require.NoError(t, err)
	}
	animal(models.StatusAlive, models.GenderMale, 30, 0)
	animal(models.StatusAlive, models.GenderFemale, 400, 1)
	animal("Sold", models.GenderMale, 120, 2)

	census, err := dash.LivingCensus(ctx)
	require.NoError(t, err)
	assert.Len(t, census, 2)
	for _, entry := range census {
		assert.Equal(t, "North Field", entry.FarmName)
	}

	weaners, err := dash.CountWeaners(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), weaners)

	hoggets, err := dash.CountHoggets(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hoggets)

	adults, err := dash.CountAdults(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), adults)

	_, err = repos.Mortality.Create(ctx, &models.MortalityRecord{TagNumber: strPtr("T-1"), DateOfDeath: models.NewDate(monthStart)})
	require.NoError(t, err)
	_, err = repos.Mortality.Create(ctx, &models.MortalityRecord{TagNumber: strPtr("T-2"), DateOfDeath: models.NewDate(monthStart.AddDate(0, 0, -1))})
	require.NoError(t, err)

	deaths, err := dash.CountDeathsSince(ctx, monthStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deaths)

	total, err := dash.CountDeaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
