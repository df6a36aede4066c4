package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roombook/core/cache"
	"roombook/core/constants"
	"roombook/core/errors"
	"roombook/core/logger"
	"roombook/modules/reservation/entity"
	"roombook/modules/reservation/repository"
)

// CalendarServiceInterface projects the reservation set onto a month view.
type CalendarServiceInterface interface {
	MonthView(ctx context.Context, year, month int) (*MonthView, *errors.AppError)
}

// MonthView is the render model for one month: a Monday-first week
// matrix where 0 marks a cell outside the month, plus the reservations
// of that month grouped by day of month.
type MonthView struct {
	Year         int                          `json:"year"`
	Month        int                          `json:"month"`
	Weeks        [][]int                      `json:"weeks"`
	Reservations map[int][]entity.Reservation `json:"reservations"`
}

type CalendarService struct {
	repo  repository.ReservationRepositoryInterface
	cache cache.Cache
}

func NewCalendarService(repo repository.ReservationRepositoryInterface, c cache.Cache) *CalendarService {
	return &CalendarService{repo: repo, cache: c}
}

// MonthView builds the projection for (year, month), serving from cache
// when a fresh copy exists. Cache failures degrade to a direct build.
func (s *CalendarService) MonthView(ctx context.Context, year, month int) (*MonthView, *errors.AppError) {
	if month < 1 || month > 12 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Month must be between 1 and 12.", nil)
	}

	if raw, err := s.cache.GetMonth(ctx, year, month); err != nil {
		logger.Warn("CalendarService:MonthView:CacheGet", "error", err)
	} else if raw != nil {
		var view MonthView
		if err := json.Unmarshal(raw, &view); err == nil {
			return &view, nil
		}
		logger.Warn("CalendarService:MonthView:CacheDecode", "error", err)
	}

	from, to := monthRange(year, month)
	rs, err := s.repo.QueryRange(ctx, from, to)
	if err != nil {
		logger.Error("CalendarService:MonthView:QueryRange", err)
		return nil, errors.NewAppError(errors.ErrStorageUnavailable, "Reservation store is unavailable.", err)
	}

	view := &MonthView{
		Year:         year,
		Month:        month,
		Weeks:        MonthGrid(year, month),
		Reservations: GroupByDay(rs),
	}

	if raw, err := json.Marshal(view); err == nil {
		if err := s.cache.SetMonth(ctx, year, month, raw); err != nil {
			logger.Warn("CalendarService:MonthView:CacheSet", "error", err)
		}
	}
	return view, nil
}

// MonthGrid returns the Monday-first week matrix for (year, month).
// Every row has exactly seven cells; cells before the first and after
// the last day of the month hold 0.
func MonthGrid(year, month int) [][]int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// time.Weekday is Sunday-based; shift so Monday is column 0.
	lead := (int(first.Weekday()) + 6) % 7

	var weeks [][]int
	week := make([]int, 7)
	col := lead
	for day := 1; day <= daysInMonth; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// GroupByDay indexes reservations by day of month. Records whose date
// fails to parse are skipped.
func GroupByDay(rs []entity.Reservation) map[int][]entity.Reservation {
	byDay := make(map[int][]entity.Reservation)
	for _, r := range rs {
		day := r.Day()
		if day == 0 {
			continue
		}
		byDay[day] = append(byDay[day], r)
	}
	return byDay
}

// monthRange returns the half-open date range covering one month.
func monthRange(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first.Format(constants.DateLayout), first.AddDate(0, 1, 0).Format(constants.DateLayout)
}

// MonthTitle renders the English "March 2024" heading for a view.
func MonthTitle(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}
