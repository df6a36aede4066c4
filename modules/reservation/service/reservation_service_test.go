package service

import (
	"context"
	"path/filepath"
	"testing"

	"roombook/core/cache"
	"roombook/core/errors"
	"roombook/modules/reservation/dto"
	"roombook/modules/reservation/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *ReservationService {
	t.Helper()
	repo := repository.NewJSONFileRepository(filepath.Join(t.TempDir(), "reservations.json"))
	engine, err := NewEngine("09:00", "17:00")
	require.NoError(t, err)
	return NewReservationService(repo, engine, cache.NewMemoryCache(), nil)
}

func createRequest() *dto.CreateReservationRequest {
	return &dto.CreateReservationRequest{
		Title:     "Team meeting",
		Email:     "ana@example.com",
		EventDate: "2024-03-15",
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

func TestCreateAssignsFirstID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, appErr := svc.Create(ctx, createRequest())
	require.Nil(t, appErr)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Team meeting", created.Title)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateConflictLeavesStoreUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, appErr := svc.Create(ctx, createRequest())
	require.Nil(t, appErr)

	conflicting := createRequest()
	conflicting.Title = "Overlapping"
	conflicting.StartTime = "10:30"
	conflicting.EndTime = "11:30"

	_, appErr = svc.Create(ctx, conflicting)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrSlotUnavailable, appErr.Code)

	rs, listErr := svc.List(ctx)
	require.Nil(t, listErr)
	require.Len(t, rs, 1)
	assert.Equal(t, "Team meeting", rs[0].Title)
}

func TestCreateRejectedFieldsLeaveStoreUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	bad := createRequest()
	bad.Title = ""
	bad.Email = "nope"

	_, appErr := svc.Create(ctx, bad)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrTitleRequired, appErr.Code)
	assert.Len(t, appErr.Details, 2)

	rs, listErr := svc.List(ctx)
	require.Nil(t, listErr)
	assert.Empty(t, rs)
}

func TestEditMovesReservation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, appErr := svc.Create(ctx, createRequest())
	require.Nil(t, appErr)

	updated, appErr := svc.Edit(ctx, created.ID, &dto.UpdateReservationRequest{
		Email:     "ana@example.com",
		EventDate: "2024-03-16",
		StartTime: "14:00",
		EndTime:   "15:00",
	})
	require.Nil(t, appErr)
	assert.Equal(t, "2024-03-16", updated.EventDate)
	assert.Equal(t, "14:00", updated.StartTime)
	assert.Equal(t, "Team meeting", updated.Title)
}

func TestEditOwnershipIsCaseAndSpaceInsensitive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, appErr := svc.Create(ctx, createRequest())
	require.Nil(t, appErr)

	_, appErr = svc.Edit(ctx, created.ID, &dto.UpdateReservationRequest{
		Email:     "  ANA@Example.COM ",
		EventDate: "2024-03-18",
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	assert.Nil(t, appErr)
}

func TestEditWrongOwnerIsRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, appErr := svc.Create(ctx, createRequest())
	require.Nil(t, appErr)

	_, appErr = svc.Edit(ctx, created.ID, &dto.UpdateReservationRequest{
		Email:     "intruder@example.com",
		EventDate: "2024-03-18",
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrOwnershipMismatch, appErr.Code)

	// Record must be unchanged.
	current, getErr := svc.Get(ctx, created.ID)
	require.Nil(t, getErr)
	assert.Equal(t, "2024-03-15", current.EventDate)
	assert.Equal(t, "10:00", current.StartTime)
}

func TestEditUnknownIDIsNotFoundBeforeOwnership(t *testing.T) {
	svc := newTestService(t)

	_, appErr := svc.Edit(context.Background(), 99, &dto.UpdateReservationRequest{
		Email:     "whoever@example.com",
		EventDate: "2024-03-18",
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestEditCanKeepOwnSlot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, appErr := svc.Create(ctx, createRequest())
	require.Nil(t, appErr)

	// Same window as before: the conflict scan must skip the record itself.
	_, appErr = svc.Edit(ctx, created.ID, &dto.UpdateReservationRequest{
		Email:     "ana@example.com",
		EventDate: "2024-03-15",
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	assert.Nil(t, appErr)
}

func TestEditIntoOccupiedSlotIsRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, appErr := svc.Create(ctx, createRequest())
	require.Nil(t, appErr)

	second := createRequest()
	second.StartTime = "11:00"
	second.EndTime = "12:00"
	moved, appErr := svc.Create(ctx, second)
	require.Nil(t, appErr)

	_, appErr = svc.Edit(ctx, moved.ID, &dto.UpdateReservationRequest{
		Email:     "ana@example.com",
		EventDate: first.EventDate,
		StartTime: "10:30",
		EndTime:   "11:30",
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrSlotUnavailable, appErr.Code)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, appErr := svc.Create(ctx, createRequest())
	require.Nil(t, appErr)

	appErr = svc.Delete(ctx, created.ID, "intruder@example.com")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrOwnershipMismatch, appErr.Code)

	appErr = svc.Delete(ctx, created.ID, "Ana@Example.com")
	assert.Nil(t, appErr)

	_, getErr := svc.Get(ctx, created.ID)
	require.NotNil(t, getErr)
	assert.Equal(t, errors.ErrNotFound, getErr.Code)
}

func TestQueryRangeValidatesDates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, appErr := svc.QueryRange(ctx, "March 2024", "2024-04-01")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = svc.QueryRange(ctx, "2024-03-01", "next month")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestWorkdayWindow(t *testing.T) {
	svc := newTestService(t)
	start, end := svc.WorkdayWindow()
	assert.Equal(t, "09:00", start)
	assert.Equal(t, "17:00", end)
}
