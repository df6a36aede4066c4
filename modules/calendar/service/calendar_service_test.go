package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"roombook/core/cache"
	"roombook/modules/reservation/entity"
	"roombook/modules/reservation/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGridMarch2024(t *testing.T) {
	// March 2024 starts on a Friday and has 31 days.
	weeks := MonthGrid(2024, 3)
	require.Len(t, weeks, 5)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 2, 3}, weeks[0])
	assert.Equal(t, []int{4, 5, 6, 7, 8, 9, 10}, weeks[1])
	assert.Equal(t, []int{25, 26, 27, 28, 29, 30, 31}, weeks[4])
}

func TestMonthGridMondayStart(t *testing.T) {
	// April 2024 starts on a Monday: no leading zeros.
	weeks := MonthGrid(2024, 4)
	require.NotEmpty(t, weeks)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, weeks[0])
	// 30 days ending on a Tuesday: trailing zeros pad the last row.
	last := weeks[len(weeks)-1]
	assert.Equal(t, []int{29, 30, 0, 0, 0, 0, 0}, last)
}

func TestMonthGridFebruaryLeapYear(t *testing.T) {
	weeks := MonthGrid(2024, 2)
	last := weeks[len(weeks)-1]
	found := false
	for _, d := range last {
		if d == 29 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGroupByDay(t *testing.T) {
	rs := []entity.Reservation{
		{ID: 1, EventDate: "2024-03-05", StartTime: "09:00", EndTime: "10:00"},
		{ID: 2, EventDate: "2024-03-05", StartTime: "11:00", EndTime: "12:00"},
		{ID: 3, EventDate: "2024-03-20", StartTime: "09:00", EndTime: "10:00"},
		{ID: 4, EventDate: "garbage", StartTime: "09:00", EndTime: "10:00"},
	}

	byDay := GroupByDay(rs)
	assert.Len(t, byDay, 2)
	assert.Len(t, byDay[5], 2)
	assert.Len(t, byDay[20], 1)
}

func TestMonthViewBuildsAndCaches(t *testing.T) {
	repo := repository.NewJSONFileRepository(filepath.Join(t.TempDir(), "reservations.json"))
	ctx := context.Background()

	_, err := repo.Append(ctx, &entity.Reservation{
		Title:     "Kickoff",
		EventDate: "2024-03-15",
		StartTime: "10:00",
		EndTime:   "11:00",
		Email:     "ana@example.com",
	})
	require.NoError(t, err)

	svc := NewCalendarService(repo, cache.NewMemoryCache())

	view, appErr := svc.MonthView(ctx, 2024, 3)
	require.Nil(t, appErr)
	assert.Equal(t, 2024, view.Year)
	assert.Equal(t, 3, view.Month)
	require.Len(t, view.Reservations[15], 1)
	assert.Equal(t, "Kickoff", view.Reservations[15][0].Title)

	// Second call is served from cache and stays identical.
	cached, appErr := svc.MonthView(ctx, 2024, 3)
	require.Nil(t, appErr)
	assert.Equal(t, view.Weeks, cached.Weeks)
	require.Len(t, cached.Reservations[15], 1)
}

func TestMonthViewRejectsBadMonth(t *testing.T) {
	repo := repository.NewJSONFileRepository(filepath.Join(t.TempDir(), "reservations.json"))
	svc := NewCalendarService(repo, cache.NewMemoryCache())

	_, appErr := svc.MonthView(context.Background(), 2024, 13)
	assert.NotNil(t, appErr)
}

func TestMonthTitle(t *testing.T) {
	assert.Equal(t, "March 2024", MonthTitle(2024, 3))
}

func TestBuildICS(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rs := []entity.Reservation{
		{
			ID:        7,
			Title:     "Design review; part 1",
			EventDate: "2024-03-15",
			StartTime: "10:00",
			EndTime:   "11:00",
			Email:     "ana@example.com",
			CreatedAt: created,
		},
	}

	feed := BuildICS(rs, "Big Meeting Room")

	assert.Contains(t, feed, "BEGIN:VCALENDAR\r\n")
	assert.Contains(t, feed, "X-WR-CALNAME:Big Meeting Room\r\n")
	assert.Contains(t, feed, "UID:reservation-7@big-meeting-room\r\n")
	assert.Contains(t, feed, "DTSTART:20240315T100000\r\n")
	assert.Contains(t, feed, "DTEND:20240315T110000\r\n")
	assert.Contains(t, feed, "DTSTAMP:20240301T120000Z\r\n")
	assert.Contains(t, feed, "SUMMARY:Design review\\; part 1\r\n")
	assert.Contains(t, feed, "END:VCALENDAR\r\n")
}

func TestBuildICSSkipsMalformedRecords(t *testing.T) {
	rs := []entity.Reservation{
		{ID: 1, Title: "Broken", EventDate: "someday", StartTime: "10:00", EndTime: "11:00"},
	}
	feed := BuildICS(rs, "Room")
	assert.NotContains(t, feed, "BEGIN:VEVENT")
}
