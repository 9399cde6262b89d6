package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"lingocoach/internal/domain"
)

// SettingsRepo keeps a single settings row with a fixed id.
type SettingsRepo struct {
	*Repo
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{Repo: NewRepo(db)}
}

func (r *SettingsRepo) Save(ctx context.Context, s domain.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	q := r.SQ.Insert("settings").
		Columns("id", "data", "updated_at").
		Values(1, data, time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(id) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at")
	sqlStr, args, _ := q.ToSql()
	_, err = r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *SettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	q := r.SQ.Select("data").From("settings").Where(sq.Eq{"id": 1}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	var data []byte
	err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s domain.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return &s, nil
}
