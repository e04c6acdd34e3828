package sqlite

import (
	"context"
	"database/sql"

	"github.com/vedran77/quill/internal/domain"
)

const userColumns = "id, username, password_hash, eth_address, created_at"

type UserRepo struct {
	db *sql.DB
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, eth_address, created_at) VALUES (?, ?, ?, ?)`,
		nullString(user.Username), nullString(user.PasswordHash), nullString(user.EthAddress), toUnix(user.CreatedAt),
	)
	if err != nil {
		return mapInsertError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
}

func (r *UserRepo) GetByEthAddress(ctx context.Context, address string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE eth_address = ?", address)
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		u                       domain.User
		username, hash, ethAddr sql.NullString
		created                 int64
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &username, &hash, &ethAddr, &created)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Username = stringPtr(username)
	u.PasswordHash = stringPtr(hash)
	u.EthAddress = stringPtr(ethAddr)
	u.CreatedAt = fromUnix(created)
	return &u, nil
}
