package entity

import (
	"strconv"
	"strings"
	"time"
)

// Reservation is a booked time block in the single meeting room.
// EventDate is an ISO YYYY-MM-DD string so range queries stay lexical;
// StartTime/EndTime are naive HH:MM clock values forming the half-open
// interval [StartTime, EndTime).
type Reservation struct {
	ID        int       `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	EventDate string    `db:"event_date" json:"event_date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// OwnedBy reports whether email matches the stored owner. The email is
// the sole mutation credential: compared case-insensitively after
// trimming, never verified.
func (r Reservation) OwnedBy(email string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Email), strings.TrimSpace(email))
}

// Day returns the day-of-month component of EventDate, or 0 when the
// stored date is malformed.
func (r Reservation) Day() int {
	parts := strings.Split(r.EventDate, "-")
	if len(parts) != 3 {
		return 0
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0
	}
	return d
}
