package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vedran77/quill/internal/domain"
)

type FileRepo struct {
	db *sql.DB
}

func (r *FileRepo) Create(ctx context.Context, file *domain.File) error {
	var userID sql.NullInt64
	if file.UserID != nil {
		userID = sql.NullInt64{Int64: *file.UserID, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO files (cid, user_id, created_at) VALUES (?, ?, ?)`,
		file.CID, userID, toUnix(file.CreatedAt),
	)
	if err != nil {
		return err
	}
	file.ID, err = res.LastInsertId()
	return err
}

func (r *FileRepo) ListByUser(ctx context.Context, userID int64) ([]domain.File, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, cid, user_id, created_at FROM files WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var files []domain.File
	for rows.Next() {
		var (
			f       domain.File
			owner   sql.NullInt64
			created int64
		)
		if err := rows.Scan(&f.ID, &f.CID, &owner, &created); err != nil {
			return nil, err
		}
		if owner.Valid {
			id := owner.Int64
			f.UserID = &id
		}
		f.CreatedAt = fromUnix(created)
		files = append(files, f)
	}
	return files, rows.Err()
}
