package middleware

import (
	"time"

	"roombook/core/constants"
	"roombook/core/logger"
	"roombook/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

// RequestID assigns a short identifier to every request unless the
// client supplied one.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(constants.HeaderRequestID)
			if id == "" {
				id = utils.GenerateID()
			}
			c.Response().Header().Set(constants.HeaderRequestID, id)
			c.Set(constants.HeaderRequestID, id)
			return next(c)
		}
	}
}

// RequestLogger logs one line per request after it completes.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			requestID, _ := c.Get(constants.HeaderRequestID).(string)
			logger.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"request_id", requestID,
			)
			return nil
		}
	}
}
