package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

type sqliteEngineerRepository struct {
	db *sql.DB
}

// NewSQLiteEngineerRepository instantiates the sqlite repository.
func NewSQLiteEngineerRepository(db *sql.DB) EngineerRepository {
	return &sqliteEngineerRepository{db: db}
}

func (r *sqliteEngineerRepository) List(ctx context.Context) ([]domain.Engineer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, workplaces, limitations FROM engineers ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Engineer{}
	for rows.Next() {
		var name, wps, limitations string
		if err := rows.Scan(&name, &wps, &limitations); err != nil {
			return nil, err
		}
		e, err := decodeEngineer(name, []byte(wps), []byte(limitations))
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *sqliteEngineerRepository) Get(ctx context.Context, name string) (*domain.Engineer, error) {
	var wps, limitations string
	err := r.db.QueryRowContext(ctx, `SELECT workplaces, limitations FROM engineers WHERE name=?`, name).Scan(&wps, &limitations)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e, err := decodeEngineer(name, []byte(wps), []byte(limitations))
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *sqliteEngineerRepository) Upsert(ctx context.Context, engineer *domain.Engineer) error {
	const query = `
        INSERT INTO engineers (name, workplaces, limitations)
        VALUES (?,?,?)
        ON CONFLICT (name) DO UPDATE
        SET workplaces=excluded.workplaces, limitations=excluded.limitations, updated_at=CURRENT_TIMESTAMP`

	wps, limitations, err := encodeEngineer(engineer)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, engineer.Name, string(wps), string(limitations))
	return err
}

func (r *sqliteEngineerRepository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM engineers WHERE name=?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type sqliteScheduleRepository struct {
	db *sql.DB
}

// NewSQLiteScheduleRepository instantiates the sqlite repository.
func NewSQLiteScheduleRepository(db *sql.DB) ScheduleRepository {
	return &sqliteScheduleRepository{db: db}
}

func (r *sqliteScheduleRepository) Get(ctx context.Context, period domain.Period) (domain.Grid, bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM schedule_periods WHERE year=? AND month=?)`,
		period.Year, period.Month,
	).Scan(&found); err != nil {
		return nil, false, err
	}
	grid := domain.Grid{}
	if !found {
		return grid, false, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT workplace, day, shift, engineer_name FROM schedule_cells WHERE year=? AND month=?`,
		period.Year, period.Month)
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

func (r *sqliteScheduleRepository) Save(ctx context.Context, period domain.Period, grid domain.Grid) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO schedule_periods (year, month) VALUES (?,?)
        ON CONFLICT (year, month) DO UPDATE SET saved_at=CURRENT_TIMESTAMP`,
		period.Year, period.Month,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_cells WHERE year=? AND month=?`, period.Year, period.Month); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO schedule_cells (year, month, workplace, day, shift, engineer_name) VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range flatten(grid) {
		if _, err := stmt.ExecContext(ctx, period.Year, period.Month, c.workplace, c.day, string(c.shift), c.engineer); err != nil {
			return err
		}
	}
	return tx.Commit()
}
