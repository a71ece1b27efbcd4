package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/car-rental-reservation/internal/catalog"
    "github.com/iliyamo/car-rental-reservation/internal/middleware"
    "github.com/iliyamo/car-rental-reservation/internal/model"
    "github.com/iliyamo/car-rental-reservation/internal/reservation"
    "github.com/iliyamo/car-rental-reservation/internal/storage"
)

// ReservationHandler serves the reservation page.  Each request builds a
// controller bound to the caller's session.
type ReservationHandler struct {
    Source catalog.Source
    Store  storage.Port
    Events reservation.EventPublisher // nil disables events
    Logger *zap.Logger
}

// NewReservationHandler constructs a ReservationHandler.  events may be nil.
func NewReservationHandler(src catalog.Source, store storage.Port, events reservation.EventPublisher, logger *zap.Logger) *ReservationHandler {
    if src == nil || store == nil {
        panic("nil dependency passed to NewReservationHandler")
    }
    if logger == nil {
        logger = zap.NewNop()
    }
    return &ReservationHandler{Source: src, Store: store, Events: events, Logger: logger}
}

func (h *ReservationHandler) controller(c echo.Context) *reservation.Controller {
    sid := middleware.SessionID(c)
    return reservation.NewController(sid, h.Source, sessionBridge(c, h.Store), h.Events, h.Logger.With(zap.String("session", sid)))
}

func (h *ReservationHandler) storageError(c echo.Context, op string, err error) error {
    h.Logger.Error("reservation storage failure", zap.String("op", op), zap.Error(err))
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
}

// Page handles GET /v1/reservation.  The stage field tells the client which
// of the entry states to render.
func (h *ReservationHandler) Page(c echo.Context) error {
    page, err := h.controller(c).Enter(c.Request().Context())
    if err != nil {
        return h.storageError(c, "enter", err)
    }
    return c.JSON(http.StatusOK, page)
}

// UpdateDraft handles PUT /v1/reservation/draft.  It is called on every
// form change and returns per-field feedback plus the price when ready.
// Draft values are strings; JSON numbers are accepted and kept as typed.
func (h *ReservationHandler) UpdateDraft(c echo.Context) error {
    var d model.Draft
    if err := c.Bind(&d); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    ev, err := h.controller(c).Change(c.Request().Context(), d)
    switch {
    case errors.Is(err, reservation.ErrNoSelection):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": reservation.MsgNoSelection})
    case errors.Is(err, reservation.ErrCarNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": reservation.MsgNotFound})
    case errors.Is(err, reservation.ErrCarUnavailable):
        return c.JSON(http.StatusConflict, echo.Map{"error": reservation.MsgUnavailable})
    case err != nil:
        return h.storageError(c, "change", err)
    }
    return c.JSON(http.StatusOK, ev)
}

var outcomeStatus = map[reservation.Outcome]int{
    reservation.OutcomeSuccess:      http.StatusOK,
    reservation.OutcomeInvalid:      http.StatusUnprocessableEntity,
    reservation.OutcomeNoSelection:  http.StatusBadRequest,
    reservation.OutcomeUnavailable:  http.StatusConflict,
    reservation.OutcomeCatalogError: http.StatusServiceUnavailable,
}

// Submit handles POST /v1/reservation.
func (h *ReservationHandler) Submit(c echo.Context) error {
    var d model.Draft
    if err := c.Bind(&d); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    res, err := h.controller(c).Submit(c.Request().Context(), d)
    if err != nil {
        return h.storageError(c, "submit", err)
    }
    return c.JSON(outcomeStatus[res.Outcome], res)
}

// Cancel handles DELETE /v1/reservation/draft: the draft is discarded and
// the client is sent back to the catalog.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    path, err := h.controller(c).Cancel(c.Request().Context())
    if err != nil {
        return h.storageError(c, "cancel", err)
    }
    return c.JSON(http.StatusOK, echo.Map{"redirect": path})
}
