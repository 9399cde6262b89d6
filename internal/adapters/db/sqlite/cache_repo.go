package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// AudioCacheRepo stores synthesized audio blobs keyed by caller-derived
// strings. Put ignores keys that are already present: cached audio is
// immutable once written.
type AudioCacheRepo struct {
	*Repo
}

func NewAudioCacheRepo(db *sql.DB) *AudioCacheRepo {
	return &AudioCacheRepo{Repo: NewRepo(db)}
}

func (r *AudioCacheRepo) Put(ctx context.Context, key string, audio []byte) error {
	q := r.SQ.Insert("audio_cache").
		Columns("key", "audio", "created_at").
		Values(key, audio, time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(key) DO NOTHING")
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *AudioCacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	q := r.SQ.Select("audio").From("audio_cache").Where(sq.Eq{"key": key}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	var audio []byte
	err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&audio)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return audio, nil
}

func (r *AudioCacheRepo) Delete(ctx context.Context, key string) error {
	q := r.SQ.Delete("audio_cache").Where(sq.Eq{"key": key})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

// TranslationCacheRepo caches message translations by derived key.
type TranslationCacheRepo struct {
	*Repo
}

func NewTranslationCacheRepo(db *sql.DB) *TranslationCacheRepo {
	return &TranslationCacheRepo{Repo: NewRepo(db)}
}

func (r *TranslationCacheRepo) Put(ctx context.Context, key, translation string) error {
	q := r.SQ.Insert("translation_cache").
		Columns("key", "translation", "created_at").
		Values(key, translation, time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(key) DO NOTHING")
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *TranslationCacheRepo) Get(ctx context.Context, key string) (string, bool, error) {
	q := r.SQ.Select("translation").From("translation_cache").Where(sq.Eq{"key": key}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	var translation string
	err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&translation)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return translation, true, nil
}
