// Package bridge hands state from the catalog page to the reservation page
// through a session-scoped storage.Port.  It owns the three well-known keys
// of the renter's session.
package bridge

import (
	"context"

	"github.com/iliyamo/car-rental-reservation/internal/catalog"
	"github.com/iliyamo/car-rental-reservation/internal/model"
	"github.com/iliyamo/car-rental-reservation/internal/storage"
)

// Storage keys shared with the catalog and reservation pages.
const (
	KeySelectedCar = "lastClickedCar"
	KeyDraft       = "reservationFormData"
	KeySnapshot    = "carsData"
)

// Bridge reads and writes session state.  The zero value is not usable; use
// New.
type Bridge struct {
	port storage.Port
}

// New returns a Bridge over port.  port is expected to be scoped to a
// single session already.
func New(port storage.Port) *Bridge { return &Bridge{port: port} }

// SaveSelectedCar records the car picked on the catalog page.  It stays
// until overwritten by the next selection.
func (b *Bridge) SaveSelectedCar(ctx context.Context, car model.Car) error {
	return storage.SetJSON(ctx, b.port, KeySelectedCar, car)
}

// SelectedCar returns the last selected car, if any.
func (b *Bridge) SelectedCar(ctx context.Context) (model.Car, bool, error) {
	var car model.Car
	ok, err := storage.GetJSON(ctx, b.port, KeySelectedCar, &car)
	return car, ok, err
}

// SaveDraft persists the in-progress reservation form.
func (b *Bridge) SaveDraft(ctx context.Context, d model.Draft) error {
	return storage.SetJSON(ctx, b.port, KeyDraft, d)
}

// Draft returns the saved draft, or an empty one.
func (b *Bridge) Draft(ctx context.Context) (model.Draft, error) {
	var d model.Draft
	_, err := storage.GetJSON(ctx, b.port, KeyDraft, &d)
	return d, err
}

// ClearDraft discards the saved draft.
func (b *Bridge) ClearDraft(ctx context.Context) error {
	return b.port.Remove(ctx, KeyDraft)
}

// SaveSnapshot stores a full catalog copy whose availability flags override
// the source catalog for this session.
func (b *Bridge) SaveSnapshot(ctx context.Context, cars []model.Car) error {
	return storage.SetJSON(ctx, b.port, KeySnapshot, cars)
}

// Snapshot returns the persisted catalog snapshot, if one was written.
func (b *Bridge) Snapshot(ctx context.Context) ([]model.Car, bool, error) {
	var cars []model.Car
	ok, err := storage.GetJSON(ctx, b.port, KeySnapshot, &cars)
	return cars, ok, err
}

// Catalog returns the catalog as seen by this session: the persisted
// snapshot when one exists, otherwise a fresh load of src.
func (b *Bridge) Catalog(ctx context.Context, src catalog.Source) ([]model.Car, error) {
	if cars, ok, err := b.Snapshot(ctx); err != nil {
		return nil, err
	} else if ok {
		return cars, nil
	}
	return src.Load(ctx)
}
