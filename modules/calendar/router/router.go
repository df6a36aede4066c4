package router

import (
	"roombook/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	Controller *controller.CalendarController
}

func NewCalendarRouter(ctrl *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{Controller: ctrl}
}

func (r *CalendarRouter) Setup(e *echo.Echo) {
	e.GET("/", r.Controller.MonthPage)
	e.POST("/add", r.Controller.AddReservation)
	e.POST("/edit/:id", r.Controller.EditReservation)
	e.POST("/delete/:id", r.Controller.DeleteReservation)
	e.GET("/calendar.ics", r.Controller.ICSFeed)
}
