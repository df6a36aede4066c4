package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"roombook/core/cache"
	"roombook/core/constants"
	"roombook/core/errors"
	"roombook/core/logger"
	"roombook/modules/reservation/dto"
	"roombook/modules/reservation/entity"
	"roombook/modules/reservation/repository"
)

// Notifier receives booking confirmations. Delivery is best-effort and
// never blocks or fails a booking.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, r *entity.Reservation)
}

// ReservationServiceInterface defines the service contract
type ReservationServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateReservationRequest) (*entity.Reservation, *errors.AppError)
	Edit(ctx context.Context, id int, req *dto.UpdateReservationRequest) (*entity.Reservation, *errors.AppError)
	Delete(ctx context.Context, id int, email string) *errors.AppError
	Get(ctx context.Context, id int) (*entity.Reservation, *errors.AppError)
	List(ctx context.Context) ([]entity.Reservation, *errors.AppError)
	QueryRange(ctx context.Context, from, to string) ([]entity.Reservation, *errors.AppError)
	WorkdayWindow() (string, string)
}

// ReservationService runs the admission pipeline and the ownership gate
// in front of the store. The mutex serializes mutations so two
// concurrent bookings for overlapping slots can never both pass
// admission against the same snapshot.
type ReservationService struct {
	repo     repository.ReservationRepositoryInterface
	engine   *Engine
	cache    cache.Cache
	notifier Notifier
	mu       sync.Mutex
}

// NewReservationService creates the service; notifier may be nil.
func NewReservationService(repo repository.ReservationRepositoryInterface, engine *Engine, c cache.Cache, notifier Notifier) *ReservationService {
	return &ReservationService{
		repo:     repo,
		engine:   engine,
		cache:    c,
		notifier: notifier,
	}
}

func (s *ReservationService) WorkdayWindow() (string, string) {
	return s.engine.WorkdayWindow()
}

func storageError(err error) *errors.AppError {
	return errors.NewAppError(errors.ErrStorageUnavailable, "Reservation store is unavailable.", err)
}

// Create runs the admission pipeline as a creation and persists on
// accept. A rejected candidate leaves the store untouched.
func (s *ReservationService) Create(ctx context.Context, req *dto.CreateReservationRequest) (*entity.Reservation, *errors.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.Load(ctx)
	if err != nil {
		logger.Error("ReservationService:Create:Load", err)
		return nil, storageError(err)
	}

	cand, appErr := s.engine.Decide(existing, Candidate{
		Title:     req.Title,
		Email:     req.Email,
		EventDate: req.EventDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}, 0, true)
	if appErr != nil {
		return nil, appErr
	}

	created, err := s.repo.Append(ctx, &entity.Reservation{
		Title:     cand.Title,
		EventDate: cand.EventDate,
		StartTime: cand.StartTime,
		EndTime:   cand.EndTime,
		Email:     cand.Email,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error("ReservationService:Create:Append", err)
		return nil, storageError(err)
	}

	s.invalidateMonth(ctx, created.EventDate)
	if s.notifier != nil {
		s.notifier.ReservationConfirmed(ctx, created)
	}

	logger.Info("ReservationService:Create:Success",
		"id", created.ID,
		"event_date", created.EventDate,
		"start_time", created.StartTime,
		"end_time", created.EndTime,
	)
	return created, nil
}

// Edit moves a reservation to a new date/time window. The ownership
// gate runs after the NotFound check and before any field validation;
// the pipeline then excludes the record's own id from the conflict scan.
func (s *ReservationService) Edit(ctx context.Context, id int, req *dto.UpdateReservationRequest) (*entity.Reservation, *errors.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.Load(ctx)
	if err != nil {
		logger.Error("ReservationService:Edit:Load", err)
		return nil, storageError(err)
	}

	target := findByID(existing, id)
	if target == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Reservation not found.", nil)
	}
	if !target.OwnedBy(req.Email) {
		return nil, errors.NewAppError(errors.ErrOwnershipMismatch, "Email does not match the reservation owner.", nil)
	}

	cand, appErr := s.engine.Decide(existing, Candidate{
		Title:     target.Title,
		Email:     target.Email,
		EventDate: req.EventDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}, id, false)
	if appErr != nil {
		return nil, appErr
	}

	oldDate := target.EventDate
	if err := s.repo.Update(ctx, id, cand.EventDate, cand.StartTime, cand.EndTime); err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NewAppError(errors.ErrNotFound, "Reservation not found.", nil)
		}
		logger.Error("ReservationService:Edit:Update", err)
		return nil, storageError(err)
	}

	s.invalidateMonth(ctx, oldDate)
	s.invalidateMonth(ctx, cand.EventDate)

	updated := *target
	updated.EventDate = cand.EventDate
	updated.StartTime = cand.StartTime
	updated.EndTime = cand.EndTime

	logger.Info("ReservationService:Edit:Success", "id", id, "event_date", updated.EventDate)
	return &updated, nil
}

// Delete removes a reservation after the ownership gate; the admission
// pipeline is never invoked.
func (s *ReservationService) Delete(ctx context.Context, id int, email string) *errors.AppError {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.Load(ctx)
	if err != nil {
		logger.Error("ReservationService:Delete:Load", err)
		return storageError(err)
	}

	target := findByID(existing, id)
	if target == nil {
		return errors.NewAppError(errors.ErrNotFound, "Reservation not found.", nil)
	}
	if !target.OwnedBy(email) {
		return errors.NewAppError(errors.ErrOwnershipMismatch, "Email does not match the reservation owner.", nil)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return errors.NewAppError(errors.ErrNotFound, "Reservation not found.", nil)
		}
		logger.Error("ReservationService:Delete", err)
		return storageError(err)
	}

	s.invalidateMonth(ctx, target.EventDate)
	logger.Info("ReservationService:Delete:Success", "id", id)
	return nil
}

func (s *ReservationService) Get(ctx context.Context, id int) (*entity.Reservation, *errors.AppError) {
	existing, err := s.repo.Load(ctx)
	if err != nil {
		logger.Error("ReservationService:Get:Load", err)
		return nil, storageError(err)
	}
	target := findByID(existing, id)
	if target == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Reservation not found.", nil)
	}
	return target, nil
}

func (s *ReservationService) List(ctx context.Context) ([]entity.Reservation, *errors.AppError) {
	existing, err := s.repo.Load(ctx)
	if err != nil {
		logger.Error("ReservationService:List:Load", err)
		return nil, storageError(err)
	}
	return existing, nil
}

func (s *ReservationService) QueryRange(ctx context.Context, from, to string) ([]entity.Reservation, *errors.AppError) {
	if _, err := time.Parse(constants.DateLayout, from); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid range start date.", nil)
	}
	if _, err := time.Parse(constants.DateLayout, to); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid range end date.", nil)
	}

	rs, err := s.repo.QueryRange(ctx, from, to)
	if err != nil {
		logger.Error("ReservationService:QueryRange", err)
		return nil, storageError(err)
	}
	return rs, nil
}

func (s *ReservationService) invalidateMonth(ctx context.Context, eventDate string) {
	year, month, ok := splitYearMonth(eventDate)
	if !ok {
		return
	}
	if err := s.cache.InvalidateMonth(ctx, year, month); err != nil {
		logger.Warn("ReservationService:InvalidateMonth", "error", err, "event_date", eventDate)
	}
}

func findByID(rs []entity.Reservation, id int) *entity.Reservation {
	for i := range rs {
		if rs[i].ID == id {
			return &rs[i]
		}
	}
	return nil
}

func splitYearMonth(eventDate string) (int, int, bool) {
	parts := strings.SplitN(eventDate, "-", 3)
	if len(parts) != 3 {
		return 0, 0, false
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return year, month, true
}
