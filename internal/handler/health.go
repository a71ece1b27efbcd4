package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health is a liveness endpoint for load balancers.  It returns "ok" with
// 200 and does not touch the catalog or storage.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}
