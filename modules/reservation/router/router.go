package router

import (
	"roombook/modules/reservation/controller"

	"github.com/labstack/echo/v4"
)

type ReservationRouter struct {
	Controller *controller.ReservationController
}

func NewReservationRouter(ctrl *controller.ReservationController) *ReservationRouter {
	return &ReservationRouter{Controller: ctrl}
}

func (r *ReservationRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")
	res := v1.Group("/reservations")
	res.GET("", r.Controller.List)
	res.POST("", r.Controller.Create)
	res.GET("/:id", r.Controller.Get)
	res.PUT("/:id", r.Controller.Update)
	res.DELETE("/:id", r.Controller.Delete)
}
