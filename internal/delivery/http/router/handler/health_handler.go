package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"passport/internal/delivery/http/response"
)

// HealthCheck is the liveness endpoint.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, "", map[string]string{"status": "ok"})
}
