package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/neoloadutility/internal/webserver/weberror"
)

// Authenticate ensures the request carries the configured token.
func Authenticate(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			if c.Request().Header.Get("X-Auth-Token") != token {
				return weberror.New(http.StatusUnauthorized, "Authorization failed")
			}

			return next(c)
		}
	}
}
