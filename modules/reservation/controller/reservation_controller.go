package controller

import (
	"net/http"

	corecontroller "roombook/core/controller"
	"roombook/core/errors"
	"roombook/core/utils"
	"roombook/modules/reservation/dto"
	"roombook/modules/reservation/service"

	"github.com/labstack/echo/v4"
)

// ReservationController exposes the reservation set as a JSON API.
type ReservationController struct {
	Service service.ReservationServiceInterface
	base    corecontroller.BaseController
}

func NewReservationController(svc service.ReservationServiceInterface) *ReservationController {
	return &ReservationController{
		Service: svc,
		base:    corecontroller.NewBaseController(),
	}
}

// List returns reservations, optionally restricted to the half-open
// date range [from, to).
// GET /api/v1/reservations?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ctrl *ReservationController) List(c echo.Context) error {
	ctx := c.Request().Context()
	from := c.QueryParam("from")
	to := c.QueryParam("to")

	if (from == "") != (to == "") {
		return ctrl.base.ErrorResponse(c,
			errors.NewAppError(errors.ErrInvalidInput, "from and to must be provided together", nil))
	}

	if from != "" {
		rs, appErr := ctrl.Service.QueryRange(ctx, from, to)
		if appErr != nil {
			return ctrl.base.ErrorResponse(c, appErr)
		}
		return ctrl.base.SuccessResponse(c, dto.ToReservationListResponse(rs), "reservations in range")
	}

	rs, appErr := ctrl.Service.List(ctx)
	if appErr != nil {
		return ctrl.base.ErrorResponse(c, appErr)
	}
	return ctrl.base.SuccessResponse(c, dto.ToReservationListResponse(rs), "all reservations")
}

// Get returns a single reservation.
// GET /api/v1/reservations/:id
func (ctrl *ReservationController) Get(c echo.Context) error {
	id, ok := reservationID(c)
	if !ok {
		return ctrl.base.ErrorResponse(c,
			errors.NewAppError(errors.ErrInvalidInput, "invalid reservation id", nil))
	}

	r, appErr := ctrl.Service.Get(c.Request().Context(), id)
	if appErr != nil {
		return ctrl.base.ErrorResponse(c, appErr)
	}
	return ctrl.base.SuccessResponse(c, dto.ToReservationResponse(r), "reservation")
}

// Create books a slot.
// POST /api/v1/reservations
func (ctrl *ReservationController) Create(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.base.ErrorResponse(c,
			errors.NewAppError(errors.ErrInvalidInput, "invalid request body", err))
	}

	created, appErr := ctrl.Service.Create(c.Request().Context(), &req)
	if appErr != nil {
		return ctrl.base.ErrorResponse(c, appErr)
	}
	return c.JSON(http.StatusCreated,
		corecontroller.NewSuccessResponse(http.StatusCreated, dto.ToReservationResponse(created), "reservation booked"))
}

// Update moves a reservation to a new date/time window.
// PUT /api/v1/reservations/:id
func (ctrl *ReservationController) Update(c echo.Context) error {
	id, ok := reservationID(c)
	if !ok {
		return ctrl.base.ErrorResponse(c,
			errors.NewAppError(errors.ErrInvalidInput, "invalid reservation id", nil))
	}

	var req dto.UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.base.ErrorResponse(c,
			errors.NewAppError(errors.ErrInvalidInput, "invalid request body", err))
	}

	updated, appErr := ctrl.Service.Edit(c.Request().Context(), id, &req)
	if appErr != nil {
		return ctrl.base.ErrorResponse(c, appErr)
	}
	return ctrl.base.SuccessResponse(c, dto.ToReservationResponse(updated), "reservation updated")
}

// Delete removes a reservation.
// DELETE /api/v1/reservations/:id
func (ctrl *ReservationController) Delete(c echo.Context) error {
	id, ok := reservationID(c)
	if !ok {
		return ctrl.base.ErrorResponse(c,
			errors.NewAppError(errors.ErrInvalidInput, "invalid reservation id", nil))
	}

	var req dto.DeleteReservationRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.base.ErrorResponse(c,
			errors.NewAppError(errors.ErrInvalidInput, "invalid request body", err))
	}

	if appErr := ctrl.Service.Delete(c.Request().Context(), id, req.Email); appErr != nil {
		return ctrl.base.ErrorResponse(c, appErr)
	}
	return ctrl.base.SuccessResponse(c, nil, "reservation deleted")
}

func reservationID(c echo.Context) (int, bool) {
	id := utils.ToNumberWithDefault(c.Param("id"), 0)
	return id, id > 0
}
