// Package postgres provides pgx-backed persistence for users and exercises.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/exercisetracker/internal/domain"
)

// Repository stores users and exercises in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the tables if they do not exist. Called once at
// startup; a failure here is fatal to the process, never to a request.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            user_id    TEXT PRIMARY KEY,
            username   TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS users_username_idx ON users (username)`,
		`CREATE TABLE IF NOT EXISTS exercises (
            exercise_id TEXT PRIMARY KEY,
            user_id     TEXT NOT NULL REFERENCES users (user_id),
            description TEXT NOT NULL,
            duration    DOUBLE PRECISION NOT NULL,
            date        TIMESTAMPTZ NOT NULL,
            created_at  TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS exercises_user_date_idx ON exercises (user_id, date)`,
	}
	for _, stmt := range statements {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// CreateUser inserts a user record.
func (r *Repository) CreateUser(ctx context.Context, user domain.User) error {
	const stmt = `INSERT INTO users (user_id, username, created_at) VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, stmt, user.ID, user.Username, user.CreatedAt)
	return err
}

// GetUserByID fetches a user by id, returning (nil, nil) when absent.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT user_id, username, created_at FROM users WHERE user_id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetUserByUsername fetches a user by exact username match. When the
// store holds duplicates (it does not enforce uniqueness) the oldest
// record wins, matching the lookup-before-insert directory semantics.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT user_id, username, created_at FROM users WHERE username = $1 ORDER BY created_at LIMIT 1`
	return r.scanUser(r.pool.QueryRow(ctx, query, username))
}

func (r *Repository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every user in insertion order.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT user_id, username, created_at FROM users ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CreateExercise inserts an exercise record.
func (r *Repository) CreateExercise(ctx context.Context, exercise domain.Exercise) error {
	const stmt = `INSERT INTO exercises (exercise_id, user_id, description, duration, date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, stmt,
		exercise.ID,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		exercise.Date,
		exercise.CreatedAt,
	)
	return err
}

// ListExercisesByUser returns the user's exercises with date in
// [from, to), ascending by date, truncated to limit.
func (r *Repository) ListExercisesByUser(ctx context.Context, userID string, from, to time.Time, limit int) ([]domain.Exercise, error) {
	const query = `SELECT exercise_id, user_id, description, duration, date, created_at
        FROM exercises
        WHERE user_id = $1 AND date >= $2 AND date < $3
        ORDER BY date, exercise_id
        LIMIT $4`

	rows, err := r.pool.Query(ctx, query, userID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.Exercise, 0, limit)
	for rows.Next() {
		var exercise domain.Exercise
		if err := rows.Scan(&exercise.ID, &exercise.UserID, &exercise.Description, &exercise.Duration, &exercise.Date, &exercise.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, exercise)
	}
	return results, rows.Err()
}
