package controller

import "html/template"

// monthPageTemplate renders the month grid with the booking form, the
// per-event edit/delete controls and any pending flash messages.
var monthPageTemplate = template.Must(template.New("month").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.RoomName}} — {{.MonthTitle}}</title>
<style>
  body { font-family: sans-serif; margin: 2rem; color: #222; }
  table { border-collapse: collapse; width: 100%; }
  th, td { border: 1px solid #bbb; vertical-align: top; width: 14%; padding: 4px; }
  th { background: #f0f0f0; }
  td { height: 6rem; }
  .daynum { font-weight: bold; }
  .event { background: #dbeafe; border-radius: 4px; margin: 2px 0; padding: 2px 4px; font-size: 0.8rem; }
  .event form { display: inline; }
  .flash { padding: 8px 12px; border-radius: 4px; margin-bottom: 8px; }
  .flash.success { background: #dcfce7; }
  .flash.error { background: #fee2e2; }
  .nav { margin-bottom: 1rem; }
  .nav a { margin-right: 0.75rem; }
  form.add { margin: 1rem 0; }
  form.add input { margin-right: 0.5rem; }
  footer { margin-top: 1rem; color: #666; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>{{.RoomName}}</h1>

{{range .Flashes}}
<div class="flash {{.Category}}">{{.Message}}</div>
{{end}}

<div class="nav">
  <a href="/?year={{.PrevYear}}&month={{.PrevMonth}}">&laquo; Previous</a>
  <a href="/">Today</a>
  <a href="/?year={{.NextYear}}&month={{.NextMonth}}">Next &raquo;</a>
  <a href="/calendar.ics">iCal feed</a>
</div>

<h2>{{.MonthTitle}}</h2>

<form class="add" method="post" action="/add">
  <input type="text" name="title" placeholder="Title" required>
  <input type="email" name="email" placeholder="Email" required>
  <input type="date" name="event_date" required>
  <input type="time" name="start_time" required>
  <input type="time" name="end_time" required>
  <button type="submit">Book</button>
</form>

<table>
  <tr>
    <th>Mon</th><th>Tue</th><th>Wed</th><th>Thu</th><th>Fri</th><th>Sat</th><th>Sun</th>
  </tr>
  {{range .Weeks}}
  <tr>
    {{range .}}
    <td>
      {{if gt . 0}}
      <div class="daynum">{{.}}</div>
      {{range index $.Reservations .}}
      <div class="event">
        {{.StartTime}}&ndash;{{.EndTime}} {{.Title}}
        <form method="post" action="/edit/{{.ID}}">
          <details>
            <summary>edit</summary>
            <input type="email" name="email" placeholder="Owner email" required>
            <input type="date" name="event_date" value="{{.EventDate}}" required>
            <input type="time" name="start_time" value="{{.StartTime}}" required>
            <input type="time" name="end_time" value="{{.EndTime}}" required>
            <button type="submit">Save</button>
          </details>
        </form>
        <form method="post" action="/delete/{{.ID}}">
          <details>
            <summary>delete</summary>
            <input type="email" name="email" placeholder="Owner email" required>
            <button type="submit">Confirm</button>
          </details>
        </form>
      </div>
      {{end}}
      {{end}}
    </td>
    {{end}}
  </tr>
  {{end}}
</table>

<footer>Bookings are accepted between {{.WorkdayStart}} and {{.WorkdayEnd}}.</footer>
</body>
</html>
`))

// monthPageData is the render model fed into monthPageTemplate.
type monthPageData struct {
	RoomName     string
	MonthTitle   string
	Weeks        [][]int
	Reservations map[int][]reservationView
	Flashes      []FlashMessage
	PrevYear     int
	PrevMonth    int
	NextYear     int
	NextMonth    int
	WorkdayStart string
	WorkdayEnd   string
}

type reservationView struct {
	ID        int
	Title     string
	EventDate string
	StartTime string
	EndTime   string
}
