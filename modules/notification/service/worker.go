package service

import (
	"context"
	"encoding/json"
	"fmt"

	"roombook/core/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes the notification queue. Actual delivery (email, chat
// webhook) plugs into handleReservationConfirmed; today it records the
// confirmation in the log.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(redisAddr string) *Worker {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{Concurrency: 2},
	)
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReservationConfirmed, handleReservationConfirmed)
	return &Worker{server: srv, mux: mux}
}

// Start runs the consumer in the background.
func (w *Worker) Start() error {
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func handleReservationConfirmed(ctx context.Context, t *asynq.Task) error {
	var p ReservationConfirmedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", TypeReservationConfirmed, err)
	}
	logger.Info("NotificationWorker:ReservationConfirmed",
		"delivery_id", p.DeliveryID,
		"reservation_id", p.ReservationID,
		"email", p.Email,
		"event_date", p.EventDate,
		"start_time", p.StartTime,
		"end_time", p.EndTime,
	)
	return nil
}
