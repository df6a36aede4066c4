package controller

import (
	"net/http"
	"time"

	"roombook/core/errors"
	"roombook/core/logger"

	"github.com/labstack/echo/v4"
)

// Response types
type (
	SuccessResponse struct {
		Status    int       `json:"status"`
		Message   string    `json:"message"`
		Data      any       `json:"data,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	}

	ErrorResponse struct {
		Status    string           `json:"status"`
		Code      errors.ErrorCode `json:"code"`
		Message   string           `json:"message"`
		Details   any              `json:"details,omitempty"`
		Timestamp time.Time        `json:"timestamp"`
	}
)

// BaseController renders the standard JSON envelopes.
type BaseController interface {
	SuccessResponse(c echo.Context, data any, message string) error
	ErrorResponse(c echo.Context, err error) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

func NewSuccessResponse(httpStatusCode int, data any, message string) *SuccessResponse {
	return &SuccessResponse{
		Status:    httpStatusCode,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func NewErrorResponse(appErrCode errors.ErrorCode, message string, details any) *ErrorResponse {
	return &ErrorResponse{
		Status:    "error",
		Code:      appErrCode,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// HTTPStatusFor maps an application error code to its transport status.
func HTTPStatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrTitleRequired, errors.ErrInvalidDate, errors.ErrInvalidTimeRange,
		errors.ErrInvalidEmail, errors.ErrOutsideWorkingHours, errors.ErrInvalidInput:
		return http.StatusBadRequest
	case errors.ErrSlotUnavailable:
		return http.StatusConflict
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrOwnershipMismatch:
		return http.StatusForbidden
	case errors.ErrStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *responseHandler) SuccessResponse(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, NewSuccessResponse(http.StatusOK, data, message))
}

func (h *responseHandler) ErrorResponse(c echo.Context, err error) error {
	httpStatus := http.StatusInternalServerError
	appCode := errors.ErrInternalServer
	msg := "internal server error"
	var details any

	if err != nil {
		if ae, ok := err.(*errors.AppError); ok && ae != nil {
			appCode = ae.Code
			if ae.Message != "" {
				msg = ae.Message
			}
			if len(ae.Details) > 0 {
				details = ae.Details
			}
			httpStatus = HTTPStatusFor(appCode)
		} else if err.Error() != "" {
			msg = err.Error()
		}
	}

	if httpStatus >= http.StatusInternalServerError {
		logger.Error("BaseController:ErrorResponse",
			"status", httpStatus,
			"code", appCode,
			"message", msg,
		)
	}
	return c.JSON(httpStatus, NewErrorResponse(appCode, msg, details))
}
