package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-scheduler/internal/config"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/persistence"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := persistence.NewSQLite(ctx, config.SQLiteConfig{Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, persistence.RunSQLiteMigrations(ctx, db.DB, zap.NewNop()))
	// applying twice must be harmless
	require.NoError(t, persistence.RunSQLiteMigrations(ctx, db.DB, zap.NewNop()))
	return db.DB
}

func TestSQLiteEngineerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteEngineerRepository(openTestDB(t))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.Upsert(ctx, &domain.Engineer{Name: "A", Workplaces: []string{"X"}}))
	require.NoError(t, repo.Upsert(ctx, &domain.Engineer{
		Name:        "B",
		Workplaces:  []string{"X", "Y"},
		Limitations: domain.Limitations{3: {domain.Shift1}},
	}))
	require.NoError(t, repo.Upsert(ctx, &domain.Engineer{Name: "C", Workplaces: []string{"Y"}}))

	// update keeps roster position
	require.NoError(t, repo.Upsert(ctx, &domain.Engineer{Name: "A", Workplaces: []string{"Y"}}))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, []string{"Y"}, list[0].Workplaces)
	assert.Equal(t, "B", list[1].Name)
	assert.True(t, list[1].Blocked(3, domain.Shift1))

	got, err := repo.Get(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, domain.Limitations{3: {domain.Shift1}}, got.Limitations)

	_, err = repo.Get(ctx, "Z")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "B"))
	assert.ErrorIs(t, repo.Delete(ctx, "B"), ErrNotFound)
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSQLiteScheduleRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteScheduleRepository(openTestDB(t))
	period := domain.Period{Year: 2024, Month: 3}

	grid, found, err := repo.Get(ctx, period)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, grid)

	first := domain.Grid{
		"Nodal":        {1: {domain.Shift1: "A", domain.Shift3: "B"}},
		"Studio Press": {31: {domain.Shift2: "C"}},
	}
	require.NoError(t, repo.Save(ctx, period, first))

	grid, found, err = repo.Get(ctx, period)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, first, grid)

	// save replaces the whole period
	second := domain.Grid{"Nodal": {2: {domain.Shift2: "A"}}}
	require.NoError(t, repo.Save(ctx, period, second))
	grid, _, err = repo.Get(ctx, period)
	require.NoError(t, err)
	assert.Equal(t, second, grid)

	// an empty save still marks the period as saved
	other := domain.Period{Year: 2024, Month: 4}
	require.NoError(t, repo.Save(ctx, other, domain.Grid{}))
	grid, found, err = repo.Get(ctx, other)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, grid)
}
