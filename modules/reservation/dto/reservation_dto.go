package dto

import (
	"time"

	"roombook/modules/reservation/entity"
)

// ===================== Request DTOs =====================

// CreateReservationRequest carries the form/JSON fields of a new booking.
type CreateReservationRequest struct {
	Title     string `json:"title" form:"title"`
	Email     string `json:"email" form:"email"`
	EventDate string `json:"event_date" form:"event_date"`
	StartTime string `json:"start_time" form:"start_time"`
	EndTime   string `json:"end_time" form:"end_time"`
}

// UpdateReservationRequest moves an existing booking to a new date/time
// window. Title is immutable across edits; Email is the owner credential.
type UpdateReservationRequest struct {
	Email     string `json:"email" form:"email"`
	EventDate string `json:"event_date" form:"event_date"`
	StartTime string `json:"start_time" form:"start_time"`
	EndTime   string `json:"end_time" form:"end_time"`
}

// DeleteReservationRequest carries the owner credential.
type DeleteReservationRequest struct {
	Email string `json:"email" form:"email"`
}

// ===================== Response DTOs =====================

type ReservationResponse struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	EventDate string    `json:"event_date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type ReservationListResponse struct {
	Items      []ReservationResponse `json:"items"`
	TotalItems int                   `json:"total_items"`
}

// ===================== Mapper functions =====================

func ToReservationResponse(r *entity.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:        r.ID,
		Title:     r.Title,
		EventDate: r.EventDate,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
	}
}

func ToReservationListResponse(rs []entity.Reservation) *ReservationListResponse {
	items := make([]ReservationResponse, 0, len(rs))
	for i := range rs {
		items = append(items, *ToReservationResponse(&rs[i]))
	}
	return &ReservationListResponse{Items: items, TotalItems: len(items)}
}
