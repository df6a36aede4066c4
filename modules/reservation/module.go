package reservation

import (
	"roombook/modules/reservation/controller"
	"roombook/modules/reservation/router"
	"roombook/modules/reservation/service"

	"github.com/labstack/echo/v4"
)

// Init registers the JSON API on top of an already-constructed service.
// The service is built once by the server and shared with the calendar
// module so all mutations funnel through a single serialization point.
func Init(e *echo.Echo, svc service.ReservationServiceInterface) {
	ctrl := controller.NewReservationController(svc)
	router.NewReservationRouter(ctrl).Setup(e)
}
