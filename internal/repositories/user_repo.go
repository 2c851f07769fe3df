package repositories

import (
	"context"
)

// UserRepository resolves the operators named by bearer tokens
type UserRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type userRepo struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, mapError(err, "user", id)
	}
	return exists, nil
}
