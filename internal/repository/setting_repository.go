package repository

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingRepository handles per-branch key/value settings.
type SettingRepository struct {
	pool *pgxpool.Pool
}

func NewSettingRepository(pool *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{pool: pool}
}

func (r *SettingRepository) GetAll(ctx context.Context, branchID int) ([]model.AppSetting, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT branch_id, key, value, updated_at FROM app_settings WHERE branch_id = $1 ORDER BY key ASC`, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []model.AppSetting
	for rows.Next() {
		var s model.AppSetting
		if err := rows.Scan(&s.BranchID, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// UpsertMany writes several settings in one transaction.
func (r *SettingRepository) UpsertMany(ctx context.Context, branchID int, values map[string]string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for key, value := range values {
		_, err := tx.Exec(ctx,
			`INSERT INTO app_settings (branch_id, key, value, updated_at) VALUES ($1, $2, $3, NOW())
			 ON CONFLICT (branch_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
			branchID, key, value)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *SettingRepository) GetByKey(ctx context.Context, branchID int, key string) (*model.AppSetting, error) {
	s := &model.AppSetting{}
	err := r.pool.QueryRow(ctx,
		`SELECT branch_id, key, value, updated_at FROM app_settings WHERE branch_id = $1 AND key = $2`, branchID, key).
		Scan(&s.BranchID, &s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}
