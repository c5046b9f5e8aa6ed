package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// User is a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
	CreatedAt    time.Time
}

const userColumns = `id, username, email, password_hash, is_active, is_superuser, created_at`

// CreateUser inserts u and fills its ID and CreatedAt.
// It returns ErrDuplicate when the username or email is taken.
func (s *Store) CreateUser(ctx context.Context, u *User) error {
	createdAt, raw := s.timestamp()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, is_active, is_superuser, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.Username, u.Email, u.PasswordHash, u.IsActive, u.IsSuperuser, raw)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", u.Username, ErrDuplicate)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read user id: %w", err)
	}
	u.ID = id
	u.CreatedAt = createdAt
	return nil
}

// userByID returns the user with the given id.
func (s *Store) userByID(ctx context.Context, id int64) (User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// UserByUsername returns the user with the given username.
func (s *Store) UserByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

// UserByIdentifier looks a user up by username or email.
func (s *Store) UserByIdentifier(ctx context.Context, identifier string) (User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = ? OR email = ?
		ORDER BY id
		LIMIT 1
	`, identifier, identifier)
	return scanUser(row)
}

// UsernameOrEmailTaken reports which of username and email are already registered.
func (s *Store) UsernameOrEmailTaken(ctx context.Context, username, email string) (usernameTaken, emailTaken bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT
			EXISTS(SELECT 1 FROM users WHERE username = ?),
			EXISTS(SELECT 1 FROM users WHERE email = ?)
	`, username, email).Scan(&usernameTaken, &emailTaken)
	if err != nil {
		return false, false, fmt.Errorf("check user existence: %w", err)
	}
	return usernameTaken, emailTaken, nil
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	var createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsSuperuser, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return User{}, fmt.Errorf("parse user created_at: %w", err)
	}
	return u, nil
}

// SetUserFlags updates the active and superuser flags of the user with the given id.
func (s *Store) SetUserFlags(ctx context.Context, id int64, active, superuser bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET is_active = ?, is_superuser = ? WHERE id = ?
	`, active, superuser, id)
	if err != nil {
		return fmt.Errorf("update user flags: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user flags: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
