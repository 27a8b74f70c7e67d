package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, COALESCE(company, ''), COALESCE(phone, ''), COALESCE(address, ''), wallet_balance, total_revenue, created_on, updated_on`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Company, &u.Phone, &u.Address, &u.WalletBalance, &u.TotalRevenue, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, password_hash, role, company, phone, address, wallet_balance, total_revenue, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, $8, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.Role, u.Company, u.Phone, u.Address, time.Now()).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, email=$2, company=$3, phone=$4, address=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.Company, u.Phone, u.Address, time.Now(), u.ID)
	return err
}

// creditRevenueTx adds amount to both wallet_balance and total_revenue in a
// single statement. It takes the caller's transaction so the credit commits
// or rolls back together with the invoice settlement that triggered it.
func creditRevenueTx(ctx context.Context, tx *sql.Tx, userID int32, amount float64) error {
	query := `UPDATE users SET wallet_balance = wallet_balance + $1, total_revenue = total_revenue + $1, updated_on = $2 WHERE id = $3`
	_, err := tx.ExecContext(ctx, query, amount, time.Now(), userID)
	return err
}
