package calendar

import (
	"roombook/core/cache"
	"roombook/core/config"
	"roombook/modules/calendar/controller"
	"roombook/modules/calendar/router"
	"roombook/modules/calendar/service"
	"roombook/modules/reservation/repository"
	reservationservice "roombook/modules/reservation/service"

	"github.com/labstack/echo/v4"
)

// Init wires the HTML month view, the form-post mutations and the ICS
// feed. Mutations go through the shared reservation service so the web
// surface and the JSON API share one admission path.
func Init(e *echo.Echo, repo repository.ReservationRepositoryInterface, res reservationservice.ReservationServiceInterface, c cache.Cache, cfg *config.Config) {
	cal := service.NewCalendarService(repo, c)
	ctrl := controller.NewCalendarController(cal, res, cfg)
	router.NewCalendarRouter(ctrl).Setup(e)
}
