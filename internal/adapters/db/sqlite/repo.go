package sqlite

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Repo provides a base for Squirrel-based repositories.
type Repo struct {
	DB *sql.DB
	SQ sq.StatementBuilderType
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db, SQ: sq.StatementBuilder}
}

// docRepo stores whole entities as JSON documents keyed by id. Saves are
// full-row upserts, so the last writer wins, matching the storage contract.
type docRepo struct {
	*Repo
	table string
}

func (r *docRepo) put(ctx context.Context, id string, data []byte, createdAt, updatedAt time.Time) error {
	q := r.SQ.Insert(r.table).
		Columns("id", "data", "created_at", "updated_at").
		Values(id, data, createdAt.UTC().Format(time.RFC3339Nano), updatedAt.UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(id) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at")
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *docRepo) get(ctx context.Context, id string) ([]byte, error) {
	q := r.SQ.Select("data").From(r.table).Where(sq.Eq{"id": id}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	var data []byte
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (r *docRepo) list(ctx context.Context) ([][]byte, error) {
	q := r.SQ.Select("data").From(r.table).OrderBy("updated_at DESC")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out [][]byte
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, rows.Err()
}

func (r *docRepo) delete(ctx context.Context, id string) error {
	q := r.SQ.Delete(r.table).Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}
