package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

type engineerRepository struct {
	pool *pgxpool.Pool
}

// NewEngineerRepository instantiates the postgres repository.
func NewEngineerRepository(pool *pgxpool.Pool) EngineerRepository {
	return &engineerRepository{pool: pool}
}

func (r *engineerRepository) List(ctx context.Context) ([]domain.Engineer, error) {
	const query = `
        SELECT name, workplaces, limitations
        FROM engineers ORDER BY position`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Engineer{}
	for rows.Next() {
		var (
			name             string
			wps, limitations []byte
		)
		if err := rows.Scan(&name, &wps, &limitations); err != nil {
			return nil, err
		}
		e, err := decodeEngineer(name, wps, limitations)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *engineerRepository) Get(ctx context.Context, name string) (*domain.Engineer, error) {
	const query = `
        SELECT workplaces, limitations
        FROM engineers WHERE name=$1`

	var wps, limitations []byte
	if err := r.pool.QueryRow(ctx, query, name).Scan(&wps, &limitations); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	e, err := decodeEngineer(name, wps, limitations)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *engineerRepository) Upsert(ctx context.Context, engineer *domain.Engineer) error {
	const query = `
        INSERT INTO engineers (name, workplaces, limitations)
        VALUES ($1,$2,$3)
        ON CONFLICT (name) DO UPDATE
        SET workplaces=EXCLUDED.workplaces, limitations=EXCLUDED.limitations, updated_at=NOW()`

	wps, limitations, err := encodeEngineer(engineer)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query, engineer.Name, string(wps), string(limitations))
	return err
}

func (r *engineerRepository) Delete(ctx context.Context, name string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM engineers WHERE name=$1`, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
