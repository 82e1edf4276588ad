package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/exercisetracker/internal/domain"
)

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	missing, err := repo.GetUserByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.GetUserByUsername(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	user := domain.User{ID: "u1", Username: "alice", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateUser(ctx, user))

	byID, err := repo.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "u1", byName.ID)
}

func TestListUsersPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.CreateUser(ctx, domain.User{
			ID:       fmt.Sprintf("u%d", i),
			Username: fmt.Sprintf("user-%d", i),
		}))
	}

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 5)
	for i, user := range users {
		assert.Equal(t, fmt.Sprintf("u%d", i), user.ID)
	}
}

func TestListExercisesRange(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	day := func(d int) time.Time {
		return time.Date(2023, time.March, d, 0, 0, 0, 0, time.UTC)
	}

	// Insert out of order to exercise the sort.
	for _, d := range []int{4, 1, 3, 2, 5} {
		require.NoError(t, repo.CreateExercise(ctx, domain.Exercise{
			ID:     fmt.Sprintf("e%d", d),
			UserID: "u1",
			Date:   day(d),
		}))
	}
	require.NoError(t, repo.CreateExercise(ctx, domain.Exercise{
		ID: "other", UserID: "u2", Date: day(3),
	}))

	t.Run("lower bound inclusive, upper exclusive", func(t *testing.T) {
		got, err := repo.ListExercisesByUser(ctx, "u1", day(2), day(4), 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "e2", got[0].ID)
		assert.Equal(t, "e3", got[1].ID)
	})

	t.Run("limit truncates after sorting", func(t *testing.T) {
		got, err := repo.ListExercisesByUser(ctx, "u1", day(1), day(6), 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "e1", got[0].ID)
		assert.Equal(t, "e2", got[1].ID)
	})

	t.Run("scoped to owner", func(t *testing.T) {
		got, err := repo.ListExercisesByUser(ctx, "u2", day(1), day(6), 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "other", got[0].ID)
	})

	t.Run("unknown user yields empty", func(t *testing.T) {
		got, err := repo.ListExercisesByUser(ctx, "u3", day(1), day(6), 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
