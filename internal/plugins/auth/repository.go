package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/AmarTuli/Fred-AI/internal/apperror"
	"github.com/AmarTuli/Fred-AI/internal/sanitize"
)

// mysqlErrDuplicateEntry is ER_DUP_ENTRY, raised when an insert violates a
// UNIQUE index.
const mysqlErrDuplicateEntry = 1062

// UserRepository defines the data access contract for user operations.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// userRepository implements UserRepository with hand-written MariaDB queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user row and sets user.ID from the generated key.
// A username collision returns apperror DuplicateUsername; the unique index
// decides, so two concurrent registrations cannot both succeed.
func (r *userRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (username, password_hash, display_name,
	                             first_name, last_name, birthday, email,
	                             phone, avatar, theme, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var birthday any
	if user.Birthday != nil {
		birthday = user.Birthday.Format(sanitize.DateLayout)
	}

	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.DisplayName,
		user.FirstName,
		user.LastName,
		birthday,
		user.Email,
		user.Phone,
		user.Avatar,
		user.Theme,
		user.CreatedAt,
	)
	if isDuplicateEntry(err) {
		return apperror.NewDuplicateUsername()
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	user.ID = id

	return nil
}

const selectUserColumns = `SELECT id, username, password_hash, display_name,
	                 first_name, last_name, email, avatar, theme, created_at
	          FROM users`

// FindByUsername retrieves a user by login name. Matching follows the
// column collation, so it is case-insensitive.
// Returns apperror.NotFound if no user exists with this username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, selectUserColumns+` WHERE username = ?`, username))
	if err != nil {
		return nil, fmt.Errorf("querying user by username: %w", err)
	}
	return user, nil
}

// UsernameExists returns true if the username is already taken. Used during
// registration to reject duplicates before hashing the password.
func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking username existence: %w", err)
	}

	return exists, nil
}

// scanUser reads one row produced by selectUserColumns.
func scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.DisplayName,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Avatar,
		&user.Theme,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// isDuplicateEntry reports whether err is a MySQL unique-key violation.
func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry
}
