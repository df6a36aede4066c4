package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"roombook/modules/reservation/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *JSONFileRepository {
	t.Helper()
	return NewJSONFileRepository(filepath.Join(t.TempDir(), "reservations.json"))
}

func sample(title, date, start, end string) *entity.Reservation {
	return &entity.Reservation{
		Title:     title,
		EventDate: date,
		StartTime: start,
		EndTime:   end,
		Email:     "owner@example.com",
		CreatedAt: time.Now().UTC(),
	}
}

func TestLoadMissingFileIsEmptyStore(t *testing.T) {
	repo := newTestRepo(t)
	rs, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestAppendAssignsSequentialIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.Append(ctx, sample("One", "2024-03-10", "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := repo.Append(ctx, sample("Two", "2024-03-10", "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func TestIDsAreNeverReused(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Append(ctx, sample("One", "2024-03-10", "09:00", "10:00"))
	require.NoError(t, err)
	second, err := repo.Append(ctx, sample("Two", "2024-03-10", "10:00", "11:00"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, second.ID))

	third, err := repo.Append(ctx, sample("Three", "2024-03-10", "11:00", "12:00"))
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID)
}

func TestUpdateRewritesTimeWindow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Append(ctx, sample("Move me", "2024-03-10", "09:00", "10:00"))
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, created.ID, "2024-03-11", "14:00", "15:00"))

	rs, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, "2024-03-11", rs[0].EventDate)
	assert.Equal(t, "14:00", rs[0].StartTime)
	assert.Equal(t, "15:00", rs[0].EndTime)
	assert.Equal(t, "Move me", rs[0].Title)
}

func TestUpdateAndDeleteUnknownID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Update(ctx, 42, "2024-03-11", "14:00", "15:00"), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 42), ErrNotFound)
}

func TestLoadReturnsChronologicalOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Append(ctx, sample("Later", "2024-03-20", "09:00", "10:00"))
	require.NoError(t, err)
	_, err = repo.Append(ctx, sample("Earlier", "2024-03-10", "09:00", "10:00"))
	require.NoError(t, err)
	_, err = repo.Append(ctx, sample("Same day later", "2024-03-10", "11:00", "12:00"))
	require.NoError(t, err)

	rs, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, rs, 3)
	assert.Equal(t, "Earlier", rs[0].Title)
	assert.Equal(t, "Same day later", rs[1].Title)
	assert.Equal(t, "Later", rs[2].Title)
}

func TestQueryRangeIsHalfOpen(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Append(ctx, sample("February", "2024-02-29", "09:00", "10:00"))
	require.NoError(t, err)
	_, err = repo.Append(ctx, sample("March start", "2024-03-01", "09:00", "10:00"))
	require.NoError(t, err)
	_, err = repo.Append(ctx, sample("March end", "2024-03-31", "09:00", "10:00"))
	require.NoError(t, err)
	_, err = repo.Append(ctx, sample("April", "2024-04-01", "09:00", "10:00"))
	require.NoError(t, err)

	rs, err := repo.QueryRange(ctx, "2024-03-01", "2024-04-01")
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "March start", rs[0].Title)
	assert.Equal(t, "March end", rs[1].Title)
}

func TestCorruptFileSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reservations.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	repo := NewJSONFileRepository(path)
	_, err := repo.Load(context.Background())
	assert.Error(t, err)
}
