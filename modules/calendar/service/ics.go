package service

import (
	"fmt"
	"strings"
	"time"

	"roombook/core/constants"
	"roombook/modules/reservation/entity"

	"github.com/gosimple/slug"
)

const icsTimestampLayout = "20060102T150405"

// BuildICS renders the reservation set as an iCalendar feed. Events use
// floating local times so they land at the booked wall-clock time in
// any subscriber's calendar. Records with unparseable dates or times
// are skipped rather than producing a broken feed.
func BuildICS(rs []entity.Reservation, roomName string) string {
	domain := slug.Make(roomName)
	if domain == "" {
		domain = "meeting-room"
	}

	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//roombook//calendar//EN")
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "X-WR-CALNAME:"+escapeICS(roomName))

	for _, r := range rs {
		start, err1 := time.Parse(constants.DateLayout+" "+constants.ClockLayout, r.EventDate+" "+r.StartTime)
		end, err2 := time.Parse(constants.DateLayout+" "+constants.ClockLayout, r.EventDate+" "+r.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}

		stamp := r.CreatedAt
		if stamp.IsZero() {
			stamp = start
		}

		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, fmt.Sprintf("UID:reservation-%d@%s", r.ID, domain))
		writeLine(&b, "DTSTAMP:"+stamp.UTC().Format(icsTimestampLayout)+"Z")
		writeLine(&b, "DTSTART:"+start.Format(icsTimestampLayout))
		writeLine(&b, "DTEND:"+end.Format(icsTimestampLayout))
		writeLine(&b, "SUMMARY:"+escapeICS(r.Title))
		writeLine(&b, "LOCATION:"+escapeICS(roomName))
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

// writeLine terminates with CRLF as RFC 5545 requires.
func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

func escapeICS(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
