// Package domain defines the business logic for the exercise tracker.
package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"example.com/exercisetracker/internal/observability"
)

var (
	// ErrUserNotFound is returned when a referenced user id does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput is returned when a submitted field fails validation.
	// No write happens once validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

const (
	// DefaultLogLimit is applied when a log query omits limit.
	DefaultLogLimit = 10
	// DefaultMaxLogLimit caps limit when no cap is configured.
	DefaultMaxLogLimit = 1000
)

// Repository captures persistence operations. Lookups return (nil, nil)
// when no record matches.
type Repository interface {
	CreateUser(ctx context.Context, user User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	CreateExercise(ctx context.Context, exercise Exercise) error
	ListExercisesByUser(ctx context.Context, userID string, from, to time.Time, limit int) ([]Exercise, error)
}

// Service orchestrates user registration and exercise logging.
type Service struct {
	repo        Repository
	maxLogLimit int
}

// NewService constructs a Service. maxLogLimit <= 0 selects
// DefaultMaxLogLimit.
func NewService(repo Repository, maxLogLimit int) *Service {
	if maxLogLimit <= 0 {
		maxLogLimit = DefaultMaxLogLimit
	}
	return &Service{repo: repo, maxLogLimit: maxLogLimit}
}

// RegisterUser returns the existing user for username or creates a new
// one. Registration is idempotent: repeated calls with the same
// username always yield the same user and write at most one record.
func (s *Service) RegisterUser(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	user := User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	observability.RecordUserRegistered()
	return &user, nil
}

// ListUsers returns every registered user in store order.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// AddExerciseInput carries the raw submission from the API layer.
// Duration and Date arrive unparsed so validation stays in one place.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string
}

// AddExercise validates the submission and persists a new exercise for
// the referenced user. All inputs are checked before any write: an
// invalid duration or date never creates a record. An omitted date
// defaults to the current moment.
func (s *Service) AddExercise(ctx context.Context, input AddExerciseInput) (*Exercise, *User, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(input.Duration), 64)
	if err != nil || duration <= 0 {
		return nil, nil, fmt.Errorf("%w: invalid duration", ErrInvalidInput)
	}

	date := time.Now().UTC()
	if strings.TrimSpace(input.Date) != "" {
		date, err = ParseDate(strings.TrimSpace(input.Date))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
		}
	}

	user, err := s.repo.GetUserByID(ctx, input.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	exercise := Exercise{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Description: strings.TrimSpace(input.Description),
		Duration:    duration,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.CreateExercise(ctx, exercise); err != nil {
		return nil, nil, err
	}
	observability.RecordExercisePersisted(exercise.CreatedAt)
	return &exercise, user, nil
}

// LogQuery carries the raw query parameters for GetLog. From and To are
// unparsed date strings; empty means "use the default bound".
type LogQuery struct {
	UserID string
	From   string
	To     string
	Limit  int
}

// LogResult pairs the resolved user with the matching exercises.
type LogResult struct {
	User      User
	Exercises []Exercise
}

// GetLog resolves the user and returns their exercises with date in
// [from, to), ascending by date, truncated to limit. from defaults to
// the epoch, to defaults to the current moment, limit defaults to
// DefaultLogLimit and is clamped to the configured maximum.
func (s *Service) GetLog(ctx context.Context, q LogQuery) (*LogResult, error) {
	user, err := s.repo.GetUserByID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	from := time.Unix(0, 0).UTC()
	if strings.TrimSpace(q.From) != "" {
		parsed, err := ParseDate(strings.TrimSpace(q.From))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date", ErrInvalidInput)
		}
		from = parsed
	}

	to := time.Now().UTC()
	if strings.TrimSpace(q.To) != "" {
		parsed, err := ParseDate(strings.TrimSpace(q.To))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date", ErrInvalidInput)
		}
		to = parsed
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if limit > s.maxLogLimit {
		limit = s.maxLogLimit
	}

	exercises, err := s.repo.ListExercisesByUser(ctx, user.ID, from, to, limit)
	if err != nil {
		return nil, err
	}

	return &LogResult{User: *user, Exercises: exercises}, nil
}
