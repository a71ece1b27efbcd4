// Package reservation implements the reservation page: entry checks against
// the selected car, live validation and pricing of the form, submission with
// an authoritative availability re-check, and cancellation.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/car-rental-reservation/internal/bridge"
	"github.com/iliyamo/car-rental-reservation/internal/catalog"
	"github.com/iliyamo/car-rental-reservation/internal/model"
	"github.com/iliyamo/car-rental-reservation/internal/queue"
)

// Messages shown on the reservation page.
const (
	MsgNoSelection      = "Please select a car from the homepage first."
	MsgNotFound         = "Car not found. Please choose another car."
	MsgUnavailable      = "Sorry, this car is no longer available. Please choose another car."
	MsgOrderUnavailable = "Order failed: Car is no longer available."
	MsgOrderNoCatalog   = "Order failed: Cannot access car data."
	MsgOrderInvalid     = "Order failed: Please correct the highlighted fields."
	MsgOrderSuccess     = "Order successful! Your reservation has been placed. We will contact you soon. Thank you for choosing Go Car!"
)

// CatalogPath is where Cancel sends the renter.
const CatalogPath = "/"

// Errors returned by Change.
var (
	ErrNoSelection    = errors.New("no car selected")
	ErrCarNotFound    = errors.New("selected car not in catalog")
	ErrCarUnavailable = errors.New("selected car no longer available")
)

// Stage tells the page what to render on entry.
type Stage string

const (
	StageNoSelection  Stage = "no_selection"
	StageCatalogError Stage = "catalog_error"
	StageNotFound     Stage = "not_found"
	StageUnavailable  Stage = "unavailable"
	StageForm         Stage = "form"
)

// Page is the reservation page as rendered on entry.  Car is set from the
// unavailable stage on; Draft and Evaluation only for the form stage.
type Page struct {
	Stage      Stage        `json:"stage"`
	Message    string       `json:"message,omitempty"`
	Car        *model.Car   `json:"car,omitempty"`
	Draft      *model.Draft `json:"draft,omitempty"`
	Evaluation *Evaluation  `json:"evaluation,omitempty"`
}

// Outcome classifies a submission.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeInvalid      Outcome = "invalid"
	OutcomeNoSelection  Outcome = "no_selection"
	OutcomeUnavailable  Outcome = "unavailable"
	OutcomeCatalogError Outcome = "catalog_error"
)

// Result is the page state after a submission attempt.
type Result struct {
	Outcome     Outcome    `json:"outcome"`
	Message     string     `json:"message"`
	FormVisible bool       `json:"form_visible"`
	Evaluation  Evaluation `json:"evaluation"`
}

// EventPublisher receives confirmed reservations.  Publishing is best
// effort and never fails a submission.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

// Controller drives one session's reservation page.
type Controller struct {
	SessionID string
	Source    catalog.Source
	Bridge    *bridge.Bridge
	Events    EventPublisher // nil disables publishing
	Logger    *zap.Logger
	Now       func() time.Time
}

// NewController wires a Controller.  A nil logger is replaced by a no-op one.
func NewController(sessionID string, src catalog.Source, b *bridge.Bridge, events EventPublisher, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		SessionID: sessionID,
		Source:    src,
		Bridge:    b,
		Events:    events,
		Logger:    logger,
		Now:       time.Now,
	}
}

// Enter checks the selected car against a freshly fetched catalog and
// decides what the page shows.  The initial evaluation of the stored draft
// is returned but not persisted.
func (c *Controller) Enter(ctx context.Context) (Page, error) {
	selected, ok, err := c.Bridge.SelectedCar(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("read selected car: %w", err)
	}
	if !ok {
		return Page{Stage: StageNoSelection, Message: MsgNoSelection}, nil
	}
	cars, err := c.Bridge.Catalog(ctx, c.Source)
	if err != nil {
		c.Logger.Warn("catalog load failed on reservation entry", zap.Error(err))
		return Page{Stage: StageCatalogError, Message: catalog.LoadFailedMessage}, nil
	}
	car, ok := catalog.Find(cars, selected.VIN)
	if !ok {
		return Page{Stage: StageNotFound, Message: MsgNotFound}, nil
	}
	if !car.Available {
		return Page{Stage: StageUnavailable, Message: MsgUnavailable, Car: &car}, nil
	}
	draft, err := c.Bridge.Draft(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("read draft: %w", err)
	}
	ev := Evaluate(draft, car.PricePerDay)
	return Page{Stage: StageForm, Car: &car, Draft: &draft, Evaluation: &ev}, nil
}

// Change re-validates the whole form after an edit and persists the draft.
// The total is priced against the authoritative catalog record, as on
// entry.  A draft for a car that is gone or booked is rejected unsaved; if
// the catalog cannot be read the stored selection's price is used.
func (c *Controller) Change(ctx context.Context, d model.Draft) (Evaluation, error) {
	selected, ok, err := c.Bridge.SelectedCar(ctx)
	if err != nil {
		return Evaluation{}, fmt.Errorf("read selected car: %w", err)
	}
	if !ok {
		return Evaluation{}, ErrNoSelection
	}
	price := selected.PricePerDay
	cars, err := c.Bridge.Catalog(ctx, c.Source)
	if err != nil {
		c.Logger.Warn("catalog load failed on form change, using selected price", zap.Error(err))
	} else {
		car, found := catalog.Find(cars, selected.VIN)
		if !found {
			return Evaluation{}, ErrCarNotFound
		}
		if !car.Available {
			return Evaluation{}, ErrCarUnavailable
		}
		price = car.PricePerDay
	}
	ev := Evaluate(d, price)
	if err := c.Bridge.SaveDraft(ctx, d); err != nil {
		return Evaluation{}, fmt.Errorf("save draft: %w", err)
	}
	return ev, nil
}

// Submit places the reservation.  The catalog is re-fetched so a car taken
// since selection is rejected; on rejection nothing is written.  On success
// the car is marked unavailable in the snapshot and the draft is cleared.
func (c *Controller) Submit(ctx context.Context, d model.Draft) (Result, error) {
	selected, ok, err := c.Bridge.SelectedCar(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read selected car: %w", err)
	}
	if !ok {
		return Result{Outcome: OutcomeNoSelection, Message: MsgNoSelection}, nil
	}
	ev := Evaluate(d, selected.PricePerDay)
	if !ev.SubmitEnabled {
		return Result{Outcome: OutcomeInvalid, Message: MsgOrderInvalid, FormVisible: true, Evaluation: ev}, nil
	}

	cars, err := c.Bridge.Catalog(ctx, c.Source)
	if err != nil {
		c.Logger.Warn("catalog load failed on submit", zap.Error(err))
		return Result{Outcome: OutcomeCatalogError, Message: MsgOrderNoCatalog, FormVisible: true, Evaluation: ev}, nil
	}
	idx := -1
	for i := range cars {
		if cars[i].VIN == selected.VIN {
			idx = i
			break
		}
	}
	if idx < 0 || !cars[idx].Available {
		c.Logger.Info("reservation rejected, car no longer available", zap.String("vin", selected.VIN))
		return Result{Outcome: OutcomeUnavailable, Message: MsgOrderUnavailable, FormVisible: true, Evaluation: ev}, nil
	}

	snapshot := model.Clone(cars)
	snapshot[idx].Available = false
	if err := c.Bridge.SaveSnapshot(ctx, snapshot); err != nil {
		return Result{}, fmt.Errorf("save snapshot: %w", err)
	}
	if err := c.Bridge.ClearDraft(ctx); err != nil {
		return Result{}, fmt.Errorf("clear draft: %w", err)
	}

	car := cars[idx]
	// recompute against the authoritative record
	ev = Evaluate(d, car.PricePerDay)
	c.Logger.Info("reservation placed",
		zap.String("vin", car.VIN),
		zap.String("session", c.SessionID),
		zap.Float64("total", *ev.Total),
	)
	c.publish(ctx, car, d, *ev.Total)
	// the form is hidden, so nothing stays on display
	ev.SubmitEnabled = false
	ev.TotalText = ""
	return Result{Outcome: OutcomeSuccess, Message: MsgOrderSuccess, Evaluation: ev}, nil
}

func (c *Controller) publish(ctx context.Context, car model.Car, d model.Draft, total float64) {
	if c.Events == nil {
		return
	}
	days, _ := parseDays(d.Value(model.FieldDays))
	ev := queue.ReservationConfirmedEvent{
		SessionID:   c.SessionID,
		VIN:         car.VIN,
		Brand:       car.Brand,
		Model:       car.Model,
		RenterName:  d.Value(model.FieldName),
		Email:       d.Value(model.FieldEmail),
		Phone:       d.Value(model.FieldPhone),
		License:     d.Value(model.FieldLicense),
		StartDate:   d.Value(model.FieldStartDate),
		Days:        days,
		PricePerDay: car.PricePerDay,
		Total:       total,
		ConfirmedAt: c.Now().UTC().Format(time.RFC3339),
	}
	if err := c.Events.PublishReservationConfirmed(ctx, ev); err != nil {
		c.Logger.Warn("publish reservation event failed", zap.String("vin", car.VIN), zap.Error(err))
	}
}

// Cancel discards the draft and returns the path of the catalog page.
func (c *Controller) Cancel(ctx context.Context) (string, error) {
	if err := c.Bridge.ClearDraft(ctx); err != nil {
		return "", fmt.Errorf("clear draft: %w", err)
	}
	return CatalogPath, nil
}
