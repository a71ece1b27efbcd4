package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-rental-reservation/internal/catalog"
	"github.com/iliyamo/car-rental-reservation/internal/middleware"
	"github.com/iliyamo/car-rental-reservation/internal/model"
	"github.com/iliyamo/car-rental-reservation/internal/reservation"
	"github.com/iliyamo/car-rental-reservation/internal/storage"
)

var fleet = catalog.Static{
	{VIN: "VIN1", Brand: "Toyota", Model: "Corolla", Type: "Sedan", PricePerDay: 50, Available: true},
	{VIN: "VIN2", Brand: "Ford", Model: "Explorer", Type: "SUV", PricePerDay: 80, Available: false},
	{VIN: "VIN3", Brand: "Toyota", Model: "RAV4", Type: "SUV", PricePerDay: 70, Available: true},
}

type failingSource struct{}

func (failingSource) Load(context.Context) ([]model.Car, error) {
	return nil, catalog.ErrCatalogUnavailable
}

// client keeps the session cookie between requests like a browser would.
type client struct {
	t      *testing.T
	e      *echo.Echo
	cookie *http.Cookie
}

func newServer(t *testing.T, src catalog.Source) *client {
	t.Helper()
	store := storage.NewMemory()
	ch := NewCatalogHandler(src, store, nil)
	rh := NewReservationHandler(src, store, nil, nil)

	e := echo.New()
	e.GET("/healthz", Health)
	v1 := e.Group("/v1", middleware.Session("test-secret", middleware.SessionOptions{TTL: time.Hour}))
	v1.GET("/cars", ch.ListCars)
	v1.GET("/cars/filters", ch.FilterOptions)
	v1.GET("/cars/suggestions", ch.Suggestions)
	v1.POST("/cars/:vin/select", ch.SelectCar)
	v1.GET("/reservation", rh.Page)
	v1.PUT("/reservation/draft", rh.UpdateDraft)
	v1.POST("/reservation", rh.Submit)
	v1.DELETE("/reservation/draft", rh.Cancel)
	return &client{t: t, e: e}
}

func (cl *client) do(method, target string, body any) (int, map[string]any) {
	cl.t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(cl.t, err)
		req = httptest.NewRequest(method, target, strings.NewReader(string(raw)))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cl.cookie != nil {
		req.AddCookie(cl.cookie)
	}
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			cl.cookie = ck
		}
	}
	out := map[string]any{}
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(cl.t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func validDraft() model.Draft {
	return model.Draft{
		Name:      "John",
		Phone:     "12345678",
		Email:     "a@b.co",
		License:   "ABC12",
		StartDate: "2025-01-01",
		Days:      "3",
	}
}

func TestHealth(t *testing.T) {
	cl := newServer(t, fleet)
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListCars_FiltersAndLabels(t *testing.T) {
	cl := newServer(t, fleet)

	code, body := cl.do(http.MethodGet, "/v1/cars?type=SUV", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, body["total"])
	items := body["items"].([]any)
	first := items[0].(map[string]any)
	assert.Equal(t, "VIN2", first["vin"])
	assert.Equal(t, "Ford Explorer", first["title"])
	assert.Equal(t, true, first["action_disabled"])

	code, body = cl.do(http.MethodGet, "/v1/cars?keyword=nothing", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["total"])
	assert.Equal(t, catalog.NoResultMessage, body["message"])
}

func TestListCars_SourceFailure(t *testing.T) {
	cl := newServer(t, failingSource{})
	code, body := cl.do(http.MethodGet, "/v1/cars", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, catalog.LoadFailedMessage, body["error"])
}

func TestFilterOptionsAndSuggestions(t *testing.T) {
	cl := newServer(t, fleet)

	code, body := cl.do(http.MethodGet, "/v1/cars/filters", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"Sedan", "SUV"}, body["types"])
	assert.Equal(t, []any{"Toyota", "Ford"}, body["brands"])

	code, body = cl.do(http.MethodGet, "/v1/cars/suggestions?q=toy", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"Toyota"}, body["items"])
	assert.Equal(t, true, body["visible"])

	_, body = cl.do(http.MethodGet, "/v1/cars/suggestions?q=", nil)
	assert.Equal(t, false, body["visible"])
}

func TestSelectCar(t *testing.T) {
	cl := newServer(t, fleet)

	code, _ := cl.do(http.MethodPost, "/v1/cars/NOPE/select", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = cl.do(http.MethodPost, "/v1/cars/VIN2/select", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, body := cl.do(http.MethodPost, "/v1/cars/VIN1/select", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, ReservationPath, body["redirect"])
}

func TestReservationPage_NoSelection(t *testing.T) {
	cl := newServer(t, fleet)
	code, body := cl.do(http.MethodGet, "/v1/reservation", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, string(reservation.StageNoSelection), body["stage"])
	assert.Equal(t, reservation.MsgNoSelection, body["message"])

	code, body = cl.do(http.MethodPut, "/v1/reservation/draft", validDraft())
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, reservation.MsgNoSelection, body["error"])
}

func TestReservationFlow_SubmitMarksCarUnavailable(t *testing.T) {
	cl := newServer(t, fleet)
	code, _ := cl.do(http.MethodPost, "/v1/cars/VIN1/select", nil)
	require.Equal(t, http.StatusOK, code)

	code, body := cl.do(http.MethodGet, "/v1/reservation", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, string(reservation.StageForm), body["stage"])

	code, body = cl.do(http.MethodPut, "/v1/reservation/draft", validDraft())
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["submit_enabled"])
	assert.Equal(t, "Total Price: $150", body["total_text"])

	code, body = cl.do(http.MethodGet, "/v1/reservation", nil)
	require.Equal(t, http.StatusOK, code)
	draft := body["draft"].(map[string]any)
	assert.Equal(t, "John", draft["name"])

	code, body = cl.do(http.MethodPost, "/v1/reservation", validDraft())
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, string(reservation.OutcomeSuccess), body["outcome"])
	assert.Equal(t, reservation.MsgOrderSuccess, body["message"])

	// The session now sees the car as booked.
	code, body = cl.do(http.MethodGet, "/v1/cars?keyword=corolla", nil)
	require.Equal(t, http.StatusOK, code)
	car := body["items"].([]any)[0].(map[string]any)
	assert.Equal(t, false, car["available"])

	code, body = cl.do(http.MethodPost, "/v1/reservation", validDraft())
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, reservation.MsgOrderUnavailable, body["message"])

	code, body = cl.do(http.MethodGet, "/v1/reservation", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, string(reservation.StageUnavailable), body["stage"])
}

func TestSubmit_InvalidForm(t *testing.T) {
	cl := newServer(t, fleet)
	cl.do(http.MethodPost, "/v1/cars/VIN3/select", nil)

	d := validDraft()
	d.Email = "broken"
	code, body := cl.do(http.MethodPost, "/v1/reservation", d)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, string(reservation.OutcomeInvalid), body["outcome"])
	assert.Equal(t, true, body["form_visible"])
}

func TestCancel_ClearsDraft(t *testing.T) {
	cl := newServer(t, fleet)
	cl.do(http.MethodPost, "/v1/cars/VIN1/select", nil)
	cl.do(http.MethodPut, "/v1/reservation/draft", validDraft())

	code, body := cl.do(http.MethodDelete, "/v1/reservation/draft", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, reservation.CatalogPath, body["redirect"])

	_, body = cl.do(http.MethodGet, "/v1/reservation", nil)
	draft, _ := body["draft"].(map[string]any)
	assert.Equal(t, "", draft["name"])
}

func TestSessionsAreIsolated(t *testing.T) {
	a := newServer(t, fleet)
	a.do(http.MethodPost, "/v1/cars/VIN1/select", nil)

	b := &client{t: t, e: a.e}
	_, body := b.do(http.MethodGet, "/v1/reservation", nil)
	assert.Equal(t, string(reservation.StageNoSelection), body["stage"])
}

func TestOutcomeStatusCoversAllOutcomes(t *testing.T) {
	for _, o := range []reservation.Outcome{
		reservation.OutcomeSuccess,
		reservation.OutcomeInvalid,
		reservation.OutcomeNoSelection,
		reservation.OutcomeUnavailable,
		reservation.OutcomeCatalogError,
	} {
		_, ok := outcomeStatus[o]
		assert.True(t, ok, o)
	}
}

func TestUpdateDraft_AcceptsNumericValues(t *testing.T) {
	cl := newServer(t, fleet)
	cl.do(http.MethodPost, "/v1/cars/VIN1/select", nil)

	code, body := cl.do(http.MethodPut, "/v1/reservation/draft", map[string]any{
		"name":       "John",
		"phone":      12345678,
		"email":      "a@b.co",
		"license":    "ABC12",
		"start_date": "2025-01-01",
		"days":       3,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["submit_enabled"])
	assert.Equal(t, "Total Price: $150", body["total_text"])

	code, _ = cl.do(http.MethodPut, "/v1/reservation/draft", map[string]any{"days": true})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUpdateDraft_RejectedOnceCarIsBooked(t *testing.T) {
	cl := newServer(t, fleet)
	cl.do(http.MethodPost, "/v1/cars/VIN1/select", nil)
	code, _ := cl.do(http.MethodPost, "/v1/reservation", validDraft())
	require.Equal(t, http.StatusOK, code)

	code, body := cl.do(http.MethodPut, "/v1/reservation/draft", validDraft())
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, reservation.MsgUnavailable, body["error"])

	_, body = cl.do(http.MethodGet, "/v1/reservation", nil)
	assert.Equal(t, string(reservation.StageUnavailable), body["stage"])
}
