package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"roombook/core/config"
	"roombook/core/errors"
	"roombook/core/logger"
	"roombook/core/utils"
	"roombook/modules/calendar/service"
	"roombook/modules/reservation/dto"
	"roombook/modules/reservation/entity"
	reservationservice "roombook/modules/reservation/service"

	"github.com/labstack/echo/v4"
)

// CalendarController serves the HTML month view and the form-post
// mutation endpoints backing it, plus the iCalendar feed.
type CalendarController struct {
	Calendar     service.CalendarServiceInterface
	Reservations reservationservice.ReservationServiceInterface
	Flash        *FlashManager
	RoomName     string
}

func NewCalendarController(cal service.CalendarServiceInterface, res reservationservice.ReservationServiceInterface, cfg *config.Config) *CalendarController {
	return &CalendarController{
		Calendar:     cal,
		Reservations: res,
		Flash:        NewFlashManager(cfg.Server.SecretKey),
		RoomName:     cfg.Room.Name,
	}
}

// MonthPage renders the month grid.
// GET /?year=YYYY&month=M (defaults to the current month)
func (ctrl *CalendarController) MonthPage(c echo.Context) error {
	now := time.Now()
	year := utils.ToNumberWithDefault(c.QueryParam("year"), now.Year())
	month := utils.ToNumberWithDefault(c.QueryParam("month"), int(now.Month()))
	if month < 1 || month > 12 {
		year, month = now.Year(), int(now.Month())
	}

	view, appErr := ctrl.Calendar.MonthView(c.Request().Context(), year, month)
	if appErr != nil {
		logger.Error("CalendarController:MonthPage", "code", appErr.Code, "message", appErr.Message)
		return c.HTML(http.StatusServiceUnavailable, "<h1>Calendar is temporarily unavailable.</h1>")
	}

	prevYear, prevMonth := year, month-1
	if prevMonth < 1 {
		prevYear, prevMonth = year-1, 12
	}
	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}

	workdayStart, workdayEnd := ctrl.Reservations.WorkdayWindow()
	data := monthPageData{
		RoomName:     ctrl.RoomName,
		MonthTitle:   service.MonthTitle(year, month),
		Weeks:        view.Weeks,
		Reservations: toViews(view.Reservations),
		Flashes:      ctrl.Flash.Pop(c),
		PrevYear:     prevYear,
		PrevMonth:    prevMonth,
		NextYear:     nextYear,
		NextMonth:    nextMonth,
		WorkdayStart: workdayStart,
		WorkdayEnd:   workdayEnd,
	}

	var buf bytes.Buffer
	if err := monthPageTemplate.Execute(&buf, data); err != nil {
		logger.Error("CalendarController:MonthPage:Render", err)
		return c.HTML(http.StatusInternalServerError, "<h1>Render error.</h1>")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// AddReservation books a slot from the month-page form and redirects
// back to the booked month, flashing the outcome.
// POST /add
func (ctrl *CalendarController) AddReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		ctrl.Flash.Add(c, "error", "Invalid form submission.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	created, appErr := ctrl.Reservations.Create(c.Request().Context(), &req)
	if appErr != nil {
		ctrl.flashError(c, appErr)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	ctrl.Flash.Add(c, "success", "Reservation booked.")
	return c.Redirect(http.StatusSeeOther, monthURL(created.EventDate))
}

// EditReservation moves a reservation from the month-page form.
// POST /edit/:id
func (ctrl *CalendarController) EditReservation(c echo.Context) error {
	id := utils.ToNumberWithDefault(c.Param("id"), 0)
	if id <= 0 {
		ctrl.Flash.Add(c, "error", "Invalid reservation id.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var req dto.UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		ctrl.Flash.Add(c, "error", "Invalid form submission.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	updated, appErr := ctrl.Reservations.Edit(c.Request().Context(), id, &req)
	if appErr != nil {
		ctrl.flashError(c, appErr)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	ctrl.Flash.Add(c, "success", "Reservation updated.")
	return c.Redirect(http.StatusSeeOther, monthURL(updated.EventDate))
}

// DeleteReservation removes a reservation from the month-page form.
// POST /delete/:id
func (ctrl *CalendarController) DeleteReservation(c echo.Context) error {
	id := utils.ToNumberWithDefault(c.Param("id"), 0)
	if id <= 0 {
		ctrl.Flash.Add(c, "error", "Invalid reservation id.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	var req dto.DeleteReservationRequest
	if err := c.Bind(&req); err != nil {
		ctrl.Flash.Add(c, "error", "Invalid form submission.")
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if appErr := ctrl.Reservations.Delete(c.Request().Context(), id, req.Email); appErr != nil {
		ctrl.flashError(c, appErr)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	ctrl.Flash.Add(c, "success", "Reservation deleted.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// ICSFeed serves every reservation as an iCalendar subscription feed.
// GET /calendar.ics
func (ctrl *CalendarController) ICSFeed(c echo.Context) error {
	rs, appErr := ctrl.Reservations.List(c.Request().Context())
	if appErr != nil {
		return c.String(http.StatusServiceUnavailable, "calendar feed unavailable")
	}
	feed := service.BuildICS(rs, ctrl.RoomName)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// flashError surfaces every collected validation message, not just the
// first failure, matching what the API returns in Details.
func (ctrl *CalendarController) flashError(c echo.Context, appErr *errors.AppError) {
	if len(appErr.Details) > 0 {
		for _, msg := range appErr.Details {
			ctrl.Flash.Add(c, "error", msg)
		}
		return
	}
	ctrl.Flash.Add(c, "error", appErr.Message)
}

func monthURL(eventDate string) string {
	d, err := time.Parse("2006-01-02", eventDate)
	if err != nil {
		return "/"
	}
	return fmt.Sprintf("/?year=%d&month=%d", d.Year(), int(d.Month()))
}

func toViews(byDay map[int][]entity.Reservation) map[int][]reservationView {
	views := make(map[int][]reservationView, len(byDay))
	for day, rs := range byDay {
		for _, r := range rs {
			views[day] = append(views[day], reservationView{
				ID:        r.ID,
				Title:     r.Title,
				EventDate: r.EventDate,
				StartTime: r.StartTime,
				EndTime:   r.EndTime,
			})
		}
	}
	return views
}
