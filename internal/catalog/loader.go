// Package catalog loads the car catalog and implements the read-side views
// used by the catalog page: filtering, keyword suggestions, filter options
// and card rendering.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/car-rental-reservation/internal/model"
)

// ErrCatalogUnavailable is returned when the catalog resource cannot be read
// or decoded.  Handlers translate it into the "Failed to load car data."
// message and disable the affected feature.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// ErrDuplicateVIN is returned when two records share a vehicle identifier.
var ErrDuplicateVIN = errors.New("duplicate vin in catalog")

// LoadFailedMessage is shown to the renter when the catalog cannot be loaded.
const LoadFailedMessage = "Failed to load car data."

// Source fetches the catalog.  Loader is the production implementation;
// tests use Static.
type Source interface {
	Load(ctx context.Context) ([]model.Car, error)
}

// Loader reads the catalog from a single location, either a filesystem path
// or an http(s) URL.  Each call performs one fetch; there is no retry.
type Loader struct {
	Location string
	Client   *http.Client
}

// NewLoader returns a Loader for location.  HTTP sources use a client with
// the given timeout; zero means no timeout.
func NewLoader(location string, timeout time.Duration) *Loader {
	return &Loader{
		Location: location,
		Client:   &http.Client{Timeout: timeout},
	}
}

// Load fetches and decodes the catalog.  Every returned error wraps either
// ErrCatalogUnavailable or ErrDuplicateVIN.
func (l *Loader) Load(ctx context.Context) ([]model.Car, error) {
	raw, err := l.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	cars, err := decode(l.Location, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCatalogUnavailable, l.Location, err)
	}
	if err := checkUnique(cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if l.Location == "" {
		return nil, errors.New("no catalog location configured")
	}
	if !isRemote(l.Location) {
		return os.ReadFile(l.Location)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Location, nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: status %d", l.Location, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func isRemote(loc string) bool {
	return strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://")
}

func decode(location string, raw []byte) ([]model.Car, error) {
	var cars []model.Car
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cars); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(raw, &cars); err != nil {
			return nil, err
		}
	}
	if cars == nil {
		cars = []model.Car{}
	}
	return cars, nil
}

func checkUnique(cars []model.Car) error {
	seen := make(map[string]struct{}, len(cars))
	for _, c := range cars {
		if _, ok := seen[c.VIN]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateVIN, c.VIN)
		}
		seen[c.VIN] = struct{}{}
	}
	return nil
}

// Static is a Source backed by an in-memory slice.  Load returns a copy so
// callers can mutate the result freely.
type Static []model.Car

// Load implements Source.
func (s Static) Load(ctx context.Context) ([]model.Car, error) {
	if err := checkUnique(s); err != nil {
		return nil, err
	}
	return model.Clone(s), nil
}
