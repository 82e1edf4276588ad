// Package memory provides an in-memory store for local development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"example.com/exercisetracker/internal/domain"
)

// Repository keeps users and exercises in process memory. Safe for
// concurrent use; data is lost on restart.
type Repository struct {
	mu        sync.RWMutex
	users     []domain.User
	usersByID map[string]int
	exercises map[string][]domain.Exercise
}

// NewRepository constructs an empty Repository.
func NewRepository() *Repository {
	return &Repository{
		usersByID: make(map[string]int),
		exercises: make(map[string][]domain.Exercise),
	}
}

// CreateUser appends a user, preserving insertion order for ListUsers.
func (r *Repository) CreateUser(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.usersByID[user.ID] = len(r.users)
	r.users = append(r.users, user)
	return nil
}

// GetUserByID returns the user or (nil, nil) when absent.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.usersByID[id]
	if !ok {
		return nil, nil
	}
	user := r.users[idx]
	return &user, nil
}

// GetUserByUsername returns the earliest user with that username, or
// (nil, nil) when absent.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

// ListUsers returns all users in insertion order.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// CreateExercise appends an exercise to the owner's log.
func (r *Repository) CreateExercise(ctx context.Context, exercise domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.exercises[exercise.UserID] = append(r.exercises[exercise.UserID], exercise)
	return nil
}

// ListExercisesByUser returns exercises with date in [from, to),
// ascending by date, truncated to limit.
func (r *Repository) ListExercisesByUser(ctx context.Context, userID string, from, to time.Time, limit int) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]domain.Exercise, 0, limit)
	for _, exercise := range r.exercises[userID] {
		if exercise.Date.Before(from) || !exercise.Date.Before(to) {
			continue
		}
		matches = append(matches, exercise)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Date.Equal(matches[j].Date) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Date.Before(matches[j].Date)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
