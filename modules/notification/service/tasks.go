package service

import (
	"encoding/json"

	"roombook/modules/reservation/entity"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeReservationConfirmed = "reservation:confirmed"

// ReservationConfirmedPayload is the queue message for a booking
// confirmation. DeliveryID makes each enqueue individually traceable.
type ReservationConfirmedPayload struct {
	DeliveryID    string `json:"delivery_id"`
	ReservationID int    `json:"reservation_id"`
	Title         string `json:"title"`
	Email         string `json:"email"`
	EventDate     string `json:"event_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

func NewReservationConfirmedTask(r *entity.Reservation) (*asynq.Task, error) {
	payload, err := json.Marshal(ReservationConfirmedPayload{
		DeliveryID:    uuid.NewString(),
		ReservationID: r.ID,
		Title:         r.Title,
		Email:         r.Email,
		EventDate:     r.EventDate,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReservationConfirmed, payload, asynq.MaxRetry(3)), nil
}
