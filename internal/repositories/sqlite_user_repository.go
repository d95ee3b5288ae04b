package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// SQLiteUserRepository implements UserRepository on a SQLite database
type SQLiteUserRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteUserRepository creates the users table if needed and returns
// a repository that owns db.
func NewSQLiteUserRepository(ctx context.Context, db *sql.DB) (*SQLiteUserRepository, error) {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	hashed_password TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, NewUserRepositoryError("init_schema", "", err, "")
	}
	return &SQLiteUserRepository{db: db, now: time.Now}, nil
}

// Create inserts a new user
func (r *SQLiteUserRepository) Create(ctx context.Context, email, hashedPassword string) (*User, error) {
	email = normalizeEmail(email)
	createdAt := r.now().UTC()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, hashed_password, created_at) VALUES (?, ?, ?)`,
		email, hashedPassword, createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, UserAlreadyExistsError(email)
		}
		return nil, NewUserRepositoryError("create_user", email, err, "")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, NewUserRepositoryError("create_user", email, err, "failed to read user id")
	}

	return &User{
		ID:             id,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      createdAt,
	}, nil
}

// FindByEmail returns the user registered with email
func (r *SQLiteUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	email = normalizeEmail(email)

	var (
		user      User
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, hashed_password, created_at FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Email, &user.HashedPassword, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, UserNotFoundError(email)
	}
	if err != nil {
		return nil, NewUserRepositoryError("find_user", email, err, "")
	}

	user.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, NewUserRepositoryError("find_user", email, err, "corrupt created_at")
	}
	return &user, nil
}

// Ping checks the database connection
func (r *SQLiteUserRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database
func (r *SQLiteUserRepository) Close() error {
	return r.db.Close()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
