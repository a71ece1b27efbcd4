package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/car-rental-reservation/internal/catalog"
    "github.com/iliyamo/car-rental-reservation/internal/storage"
)

// ReservationPath is where the client navigates after selecting a car.
const ReservationPath = "/reservation"

// CatalogHandler serves the catalog page: the card grid, filter selectors,
// keyword suggestions and car selection.
type CatalogHandler struct {
    Source catalog.Source
    Store  storage.Port
    Logger *zap.Logger
}

// NewCatalogHandler constructs a CatalogHandler.  Source and Store must be
// non-nil.
func NewCatalogHandler(src catalog.Source, store storage.Port, logger *zap.Logger) *CatalogHandler {
    if src == nil || store == nil {
        panic("nil dependency passed to NewCatalogHandler")
    }
    if logger == nil {
        logger = zap.NewNop()
    }
    return &CatalogHandler{Source: src, Store: store, Logger: logger}
}

func (h *CatalogHandler) loadFailed(c echo.Context, err error) error {
    h.Logger.Warn("catalog load failed", zap.String("path", c.Path()), zap.Error(err))
    return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": catalog.LoadFailedMessage})
}

// ListCars handles GET /v1/cars?keyword=&type=&brand=.  The session's
// snapshot, when present, replaces the source catalog.
func (h *CatalogHandler) ListCars(c echo.Context) error {
    cars, err := sessionBridge(c, h.Store).Catalog(c.Request().Context(), h.Source)
    if err != nil {
        return h.loadFailed(c, err)
    }
    q := catalog.Query{
        Keyword: c.QueryParam("keyword"),
        Type:    c.QueryParam("type"),
        Brand:   c.QueryParam("brand"),
    }
    cards := catalog.Cards(catalog.Filter(cars, q))
    resp := echo.Map{"items": cards, "total": len(cards)}
    if len(cards) == 0 {
        resp["message"] = catalog.NoResultMessage
    }
    return c.JSON(http.StatusOK, resp)
}

// FilterOptions handles GET /v1/cars/filters.  Availability does not affect
// the options, so the source catalog is used and the response is cacheable.
func (h *CatalogHandler) FilterOptions(c echo.Context) error {
    cars, err := h.Source.Load(c.Request().Context())
    if err != nil {
        return h.loadFailed(c, err)
    }
    return c.JSON(http.StatusOK, catalog.Options(cars))
}

// Suggestions handles GET /v1/cars/suggestions?q=.  Like FilterOptions it
// reads only type, brand and model, which snapshots never change.
func (h *CatalogHandler) Suggestions(c echo.Context) error {
    cars, err := h.Source.Load(c.Request().Context())
    if err != nil {
        return h.loadFailed(c, err)
    }
    items := catalog.Suggest(cars, c.QueryParam("q"))
    return c.JSON(http.StatusOK, echo.Map{"items": items, "visible": len(items) > 0})
}

// SelectCar handles POST /v1/cars/:vin/select.  Only available cars can be
// selected; the choice is stored for the reservation page.
func (h *CatalogHandler) SelectCar(c echo.Context) error {
    ctx := c.Request().Context()
    vin := c.Param("vin")
    b := sessionBridge(c, h.Store)
    cars, err := b.Catalog(ctx, h.Source)
    if err != nil {
        return h.loadFailed(c, err)
    }
    car, ok := catalog.Find(cars, vin)
    if !ok {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
    }
    if !car.Available {
        return c.JSON(http.StatusConflict, echo.Map{"error": "car unavailable"})
    }
    if err := b.SaveSelectedCar(ctx, car); err != nil {
        h.Logger.Error("save selected car", zap.String("vin", vin), zap.Error(err))
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"redirect": ReservationPath, "car": car})
}

