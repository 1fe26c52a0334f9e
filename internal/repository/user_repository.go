package repository

import (
	"context"
	"database/sql"
	"strings"

	"ticketr/internal/model"
)

// UserRepo provides MySQL-backed persistence for the `users` table.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id,email,name,surname,password_hash,verify_token,created_at,updated_at"

// Create inserts the user and populates its generated id. A duplicate
// email surfaces as ErrEmailExists (MySQL error 1062).
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (email,name,surname,password_hash,verify_token) VALUES (?,?,?,?,?)",
		u.Email, u.Name, u.Surname, u.PasswordHash, u.VerifyToken)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// GetByVerifyToken fetches the user holding a pending verification
// token. A miss is reported as ErrTokenNotFound rather than
// ErrUserNotFound so the validate endpoint can answer 400 instead of 404.
func (r *UserRepo) GetByVerifyToken(ctx context.Context, token string) (model.User, error) {
	u, err := r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE verify_token=? LIMIT 1", token))
	if err == ErrUserNotFound {
		return model.User{}, ErrTokenNotFound
	}
	return u, err
}

// ClearVerifyToken marks the account as verified by nulling the token.
func (r *UserRepo) ClearVerifyToken(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET verify_token=NULL WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	var token sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Surname, &u.PasswordHash,
		&token, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	if token.Valid {
		v := token.String
		u.VerifyToken = &v
	}
	return u, nil
}
