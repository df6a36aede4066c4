package service

import (
	"context"

	"roombook/core/logger"
	"roombook/modules/reservation/entity"

	"github.com/hibiken/asynq"
)

// NotificationService enqueues booking confirmations onto the Redis
// task queue. Enqueue failures are logged and swallowed: a confirmation
// that cannot be queued never fails the booking it confirms.
type NotificationService struct {
	client *asynq.Client
}

func NewNotificationService(redisAddr string) *NotificationService {
	return &NotificationService{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

func (s *NotificationService) ReservationConfirmed(ctx context.Context, r *entity.Reservation) {
	task, err := NewReservationConfirmedTask(r)
	if err != nil {
		logger.Error("NotificationService:ReservationConfirmed:Task", err)
		return
	}
	info, err := s.client.EnqueueContext(ctx, task)
	if err != nil {
		logger.Warn("NotificationService:ReservationConfirmed:Enqueue", "error", err, "reservation_id", r.ID)
		return
	}
	logger.Info("NotificationService:ReservationConfirmed:Queued", "task_id", info.ID, "reservation_id", r.ID)
}

func (s *NotificationService) Close() error {
	return s.client.Close()
}
