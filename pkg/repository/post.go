package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/likecontent/pkg/domain"
)

// PostRepository handles post-related database operations
type PostRepository struct {
	db *sqlx.DB
}

// postSQL represents a post for SQL operations
type postSQL struct {
	ID        int64     `db:"id"`
	Type      string    `db:"type"`
	Title     string    `db:"title"`
	Permalink string    `db:"permalink"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewPostRepository creates a new post repository
func NewPostRepository(database *sqlx.DB) *PostRepository {
	return &PostRepository{db: database}
}

// UpsertPost creates a post or updates type, title and permalink of an existing one
func (r *PostRepository) UpsertPost(ctx context.Context, post *domain.Post) error {
	if post.ID <= 0 {
		return fmt.Errorf("upsert post: invalid id %d", post.ID)
	}

	sqlPost := &postSQL{ID: post.ID, Type: post.Type, Title: post.Title, Permalink: post.Permalink}
	query := `
		INSERT INTO posts (id, type, title, permalink)
		VALUES (:id, :type, :title, :permalink)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			permalink = excluded.permalink,
			updated_at = CURRENT_TIMESTAMP
	`
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, query, sqlPost)
		return classify(err)
	}, errNoRetry)
	if err != nil {
		return fmt.Errorf("upsert post: %w", err)
	}
	return nil
}

// GetPost retrieves a post by ID, returns domain.ErrNotFound if missing
func (r *PostRepository) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	var sqlPost postSQL
	err := r.db.GetContext(ctx, &sqlPost, "SELECT * FROM posts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return r.toDomainPost(&sqlPost), nil
}

// ListPosts returns posts ordered by id, newest first
func (r *PostRepository) ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = 100
	}
	var sqlPosts []postSQL
	query := "SELECT * FROM posts ORDER BY id DESC LIMIT ? OFFSET ?"
	if err := r.db.SelectContext(ctx, &sqlPosts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	posts := make([]domain.Post, len(sqlPosts))
	for i := range sqlPosts {
		posts[i] = *r.toDomainPost(&sqlPosts[i])
	}
	return posts, nil
}

// DeletePost removes a post together with all of its metadata
func (r *PostRepository) DeletePost(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM post_meta WHERE post_id = ?", id); err != nil {
		return fmt.Errorf("delete post meta: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete post %d: %w", id, domain.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// toDomainPost converts postSQL to domain.Post
func (r *PostRepository) toDomainPost(p *postSQL) *domain.Post {
	return &domain.Post{
		ID:        p.ID,
		Type:      p.Type,
		Title:     p.Title,
		Permalink: p.Permalink,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
