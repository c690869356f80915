// Package postgres implements zenblog.Store on PostgreSQL via pgx. The
// schema lives in migrations/0001_create_posts.sql.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store implements zenblog.Store using PostgreSQL
type Store struct {
	db DBTX
}

// New creates a new PostgreSQL store
func New(db DBTX) *Store {
	return &Store{db: db}
}

// NewWithPool creates a new PostgreSQL store with a connection pool
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

const postColumns = `id, title, slug, content, category, status,
       seo_description, seo_keywords, author_name, created_at`

func (s *Store) List(ctx context.Context) ([]*zenblog.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, s.handleError("list", err)
	}
	defer rows.Close()

	var posts []*zenblog.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, s.handleError("list", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, s.handleError("list", err)
	}
	if posts == nil {
		posts = []*zenblog.Post{}
	}
	return posts, nil
}

func (s *Store) Get(ctx context.Context, id string) (*zenblog.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, zenblog.ErrPostNotFound
		}
		return nil, s.handleError("get", err)
	}
	return post, nil
}

func (s *Store) Insert(ctx context.Context, post *zenblog.Post) (*zenblog.Post, error) {
	query := `
		INSERT INTO posts (
			id, title, slug, content, category, status,
			seo_description, seo_keywords, author_name, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.Category,
		string(post.Status), post.SEOMeta.Description, post.SEOMeta.Keywords,
		post.AuthorName, post.CreatedAt)
	if err != nil {
		return nil, s.handleError("insert", err)
	}

	postCopy := *post
	return &postCopy, nil
}

// Update reads the current row, applies the merge-patch in memory and writes
// the full row back. Last writer wins, same as every other backend.
func (s *Store) Update(ctx context.Context, id string, patch zenblog.UpdatePostRequest) (*zenblog.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(post)

	query := `
		UPDATE posts SET
			title = $2, slug = $3, content = $4, category = $5, status = $6,
			seo_description = $7, seo_keywords = $8, author_name = $9
		WHERE id = $1`

	tag, err := s.db.Exec(ctx, query,
		post.ID, post.Title, post.Slug, post.Content, post.Category,
		string(post.Status), post.SEOMeta.Description, post.SEOMeta.Keywords,
		post.AuthorName)
	if err != nil {
		return nil, s.handleError("update", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, zenblog.ErrPostNotFound
	}
	return post, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	// A zero row count is fine: delete is idempotent
	_, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return s.handleError("delete", err)
	}
	return nil
}

func scanPost(row pgx.Row) (*zenblog.Post, error) {
	var post zenblog.Post
	var status string
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.Category,
		&status, &post.SEOMeta.Description, &post.SEOMeta.Keywords,
		&post.AuthorName, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	post.Status = zenblog.PostStatus(status)
	return &post, nil
}

// handleError maps driver failures onto the library's error taxonomy.
func (s *Store) handleError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			err = fmt.Errorf("post already exists: %s", pgErr.ConstraintName)
		case "42P01": // undefined_table
			err = fmt.Errorf("posts table does not exist - database migration required")
		default:
			err = fmt.Errorf("%s (code: %s)", pgErr.Message, pgErr.Code)
		}
		return &zenblog.StoreError{Backend: "postgres", Op: op, Err: err}
	}

	// Anything else is treated as the backend being unreachable
	return &zenblog.StoreError{
		Backend: "postgres",
		Op:      op,
		Err:     fmt.Errorf("%w: %v", zenblog.ErrStoreUnavailable, err),
	}
}
