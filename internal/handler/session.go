package handler

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/car-rental-reservation/internal/bridge"
    "github.com/iliyamo/car-rental-reservation/internal/middleware"
    "github.com/iliyamo/car-rental-reservation/internal/storage"
)

// sessionBridge scopes the shared store to the caller's session.
func sessionBridge(c echo.Context, store storage.Port) *bridge.Bridge {
    return bridge.New(storage.Scope(store, middleware.SessionID(c)))
}
