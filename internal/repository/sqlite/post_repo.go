package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vedran77/quill/internal/domain"
)

type PostRepo struct {
	db *sql.DB
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (title, text, created_at) VALUES (?, ?, ?)`,
		post.Title, post.Text, toUnix(post.CreatedAt),
	)
	if err != nil {
		return err
	}
	post.ID, err = res.LastInsertId()
	return err
}

func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, title, text, created_at FROM posts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var (
			p       domain.Post
			created int64
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Text, &created); err != nil {
			return nil, err
		}
		p.CreatedAt = fromUnix(created)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
