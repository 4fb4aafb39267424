// internal/store/users.go
package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/models"

	"github.com/google/uuid"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, hashed_password, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(company, ''), created_at`

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "find_user_by_email", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "find_user_by_id", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) findOne(ctx context.Context, queryType, query string, arg string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.HashedPassword, &u.FirstName, &u.LastName, &u.Company, &u.CreatedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, queryError(queryType, err)
	}
	return &u, nil
}

// Create inserts u. The password must already be hashed.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, hashed_password, first_name, last_name, company, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Email, u.HashedPassword, u.FirstName, u.LastName, u.Company, u.CreatedAt)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}
