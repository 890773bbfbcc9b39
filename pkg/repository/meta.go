package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/likecontent/pkg/domain"
)

// MetaRepository is the generic per-post key/value store backed by SQLite
type MetaRepository struct {
	db *sqlx.DB
}

// metaSQL represents a post_meta row
type metaSQL struct {
	PostID int64  `db:"post_id"`
	Key    string `db:"meta_key"`
	Value  string `db:"meta_value"`
}

// NewMetaRepository creates a new meta repository
func NewMetaRepository(database *sqlx.DB) *MetaRepository {
	return &MetaRepository{db: database}
}

// GetMeta returns the value stored for the post and key, found is false if absent
func (r *MetaRepository) GetMeta(ctx context.Context, postID int64, key string) (value string, found bool, err error) {
	err = r.db.GetContext(ctx, &value,
		"SELECT meta_value FROM post_meta WHERE post_id = ? AND meta_key = ?", postID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get meta: %w", err)
	}
	return value, true, nil
}

// UpdateMeta stores the value for the post and key, replacing the previous one
func (r *MetaRepository) UpdateMeta(ctx context.Context, postID int64, key, value string) error {
	query := `
		INSERT INTO post_meta (post_id, meta_key, meta_value) VALUES (?, ?, ?)
		ON CONFLICT(post_id, meta_key) DO UPDATE SET meta_value = excluded.meta_value
	`
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, postID, key, value)
		return classify(err)
	}, errNoRetry)
	if err != nil {
		return fmt.Errorf("update meta: %w", err)
	}
	return nil
}

// IncrementMeta atomically adds one to the numeric value of the key and returns the result.
// Missing, negative and non-numeric values count as zero, the result saturates at MaxInt64.
func (r *MetaRepository) IncrementMeta(ctx context.Context, postID int64, key string) (int64, error) {
	query := `
		INSERT INTO post_meta (post_id, meta_key, meta_value) VALUES (?, ?, '1')
		ON CONFLICT(post_id, meta_key) DO UPDATE SET
			meta_value = CAST(MIN(MAX(CAST(post_meta.meta_value AS INTEGER), 0), 9223372036854775806) + 1 AS TEXT)
		RETURNING meta_value
	`
	var value string
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		return classify(r.db.GetContext(ctx, &value, query, postID, key))
	}, errNoRetry)
	if err != nil {
		return 0, fmt.Errorf("increment meta: %w", err)
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse incremented value %q: %w", value, err)
	}
	return n, nil
}

// RankByMeta returns entries of the key ordered by numeric value descending, ties by post id
func (r *MetaRepository) RankByMeta(ctx context.Context, key string, offset, limit int) ([]domain.MetaEntry, error) {
	query := `
		SELECT post_id, meta_key, meta_value FROM post_meta
		WHERE meta_key = ?
		ORDER BY CAST(meta_value AS INTEGER) DESC, post_id ASC
		LIMIT ? OFFSET ?
	`
	var rows []metaSQL
	if err := r.db.SelectContext(ctx, &rows, query, key, limit, offset); err != nil {
		return nil, fmt.Errorf("rank by meta: %w", err)
	}

	entries := make([]domain.MetaEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.MetaEntry{PostID: row.PostID, Key: row.Key, Value: row.Value}
	}
	return entries, nil
}

// DeleteMeta removes every key stored for the post
func (r *MetaRepository) DeleteMeta(ctx context.Context, postID int64) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM post_meta WHERE post_id = ?", postID)
		return classify(err)
	}, errNoRetry)
	if err != nil {
		return fmt.Errorf("delete meta: %w", err)
	}
	return nil
}
