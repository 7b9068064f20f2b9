package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

type scheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository instantiates the postgres repository.
func NewScheduleRepository(pool *pgxpool.Pool) ScheduleRepository {
	return &scheduleRepository{pool: pool}
}

func (r *scheduleRepository) Get(ctx context.Context, period domain.Period) (domain.Grid, bool, error) {
	var found bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM schedule_periods WHERE year=$1 AND month=$2)`,
		period.Year, period.Month,
	).Scan(&found); err != nil {
		return nil, false, err
	}
	grid := domain.Grid{}
	if !found {
		return grid, false, nil
	}

	const query = `
        SELECT workplace, day, shift, engineer_name
        FROM schedule_cells WHERE year=$1 AND month=$2`
	rows, err := r.pool.Query(ctx, query, period.Year, period.Month)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			workplace, shift, name string
			day                    int
		)
		if err := rows.Scan(&workplace, &day, &shift, &name); err != nil {
			return nil, false, err
		}
		grid.Set(workplace, day, domain.Shift(shift), name)
	}
	return grid, true, rows.Err()
}

func (r *scheduleRepository) Save(ctx context.Context, period domain.Period, grid domain.Grid) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `
        INSERT INTO schedule_periods (year, month) VALUES ($1,$2)
        ON CONFLICT (year, month) DO UPDATE SET saved_at=NOW()`,
		period.Year, period.Month,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM schedule_cells WHERE year=$1 AND month=$2`, period.Year, period.Month); err != nil {
		return err
	}

	cells := flatten(grid)
	rows := make([][]any, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, []any{period.Year, period.Month, c.workplace, c.day, string(c.shift), c.engineer})
	}
	if len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"schedule_cells"},
			[]string{"year", "month", "workplace", "day", "shift", "engineer_name"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
