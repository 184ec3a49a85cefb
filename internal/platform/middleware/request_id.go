package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDKey is the echo context key under which the request id is stored.
const RequestIDKey = "request_id"

// HeaderRequestID is the response header carrying the request id.
const HeaderRequestID = "X-Request-Id"

// RequestID assigns a unique id to each request. An incoming X-Request-Id
// header is honored so ids can be traced across services.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(HeaderRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(RequestIDKey, rid)
			c.Response().Header().Set(HeaderRequestID, rid)
			return next(c)
		}
	}
}
