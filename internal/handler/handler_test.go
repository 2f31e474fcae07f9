package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
)

var handlerNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *booking.Engine {
	t.Helper()
	eng := booking.NewWithClock(func() time.Time { return handlerNow })

	addr := model.Address{Country: "Iran", City: "Tehran", Street: "Enghelab"}
	if err := eng.AddUser(model.User{ID: 1, Username: "akbar", Role: model.RoleManager, Address: addr}); err != nil {
		t.Fatalf("add manager: %v", err)
	}
	if err := eng.AddUser(model.User{ID: 2, Username: "mmd", Role: model.RoleClient, Address: addr}); err != nil {
		t.Fatalf("add client: %v", err)
	}
	if err := eng.AddRestaurant(model.Restaurant{
		ID: 10, ManagerID: 1, Name: "Kababi Akbar", Type: "kebab",
		Address: addr, Opens: 9 * time.Hour, Closes: 22 * time.Hour,
	}); err != nil {
		t.Fatalf("add restaurant: %v", err)
	}
	for _, seats := range []int{2, 4} {
		if _, err := eng.AddTable(10, seats); err != nil {
			t.Fatalf("add table: %v", err)
		}
	}
	return eng
}

func doRequest(e *echo.Echo, method, target string, userID uint64, h echo.HandlerFunc, params map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", userID)
	}
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestListRestaurantsFilters(t *testing.T) {
	eng := newTestEngine(t)
	p := NewPublicHandler(eng)
	e := echo.New()

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"no filter", "", 1},
		{"name substring", "?name=kababi", 1},
		{"name miss", "?name=pizza", 0},
		{"type match", "?type=kebab", 1},
		{"city miss", "?city=Isfahan", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodGet, "/v1/restaurants"+tc.query, 0, p.ListRestaurants, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var body struct {
				Restaurants []json.RawMessage `json:"restaurants"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.Restaurants) != tc.want {
				t.Fatalf("got %d restaurants, want %d", len(body.Restaurants), tc.want)
			}
		})
	}
}

func TestGetRestaurantIncludesMaxSeats(t *testing.T) {
	eng := newTestEngine(t)
	p := NewPublicHandler(eng)
	e := echo.New()

	rec := doRequest(e, http.MethodGet, "/v1/restaurants/10", 0, p.GetRestaurant, map[string]string{"id": "10"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		MaxSeats int `json:"max_seats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.MaxSeats != 4 {
		t.Fatalf("max_seats = %d, want 4", body.MaxSeats)
	}

	rec = doRequest(e, http.MethodGet, "/v1/restaurants/99", 0, p.GetRestaurant, map[string]string{"id": "99"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown restaurant status = %d, want 404", rec.Code)
	}
}

func TestAvailableTimesHandler(t *testing.T) {
	eng := newTestEngine(t)
	h := NewCustomerHandler(eng, &repository.ReservationRepo{}, "")
	e := echo.New()

	cases := []struct {
		name       string
		id         string
		query      string
		wantStatus int
		wantSlots  int
	}{
		{"missing people", "10", "?date=2026-03-11", http.StatusBadRequest, 0},
		{"bad date", "10", "?people=2&date=11-03-2026", http.StatusBadRequest, 0},
		{"unknown restaurant", "99", "?people=2&date=2026-03-11", http.StatusNotFound, 0},
		{"party too large", "10", "?people=9&date=2026-03-11", http.StatusBadRequest, 0},
		{"past date", "10", "?people=2&date=2026-03-09", http.StatusBadRequest, 0},
		{"free day", "10", "?people=2&date=2026-03-11", http.StatusOK, 26},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodGet, "/v1/restaurants/"+tc.id+"/available-times"+tc.query, 0, h.AvailableTimes, map[string]string{"id": tc.id})
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if tc.wantStatus != http.StatusOK {
				return
			}
			var body struct {
				AvailableTimes []string `json:"available_times"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.AvailableTimes) != tc.wantSlots {
				t.Fatalf("got %d slots, want %d", len(body.AvailableTimes), tc.wantSlots)
			}
		})
	}
}

func TestMyReservationsUnknownUser(t *testing.T) {
	eng := newTestEngine(t)
	h := NewCustomerHandler(eng, &repository.ReservationRepo{}, "")
	e := echo.New()

	rec := doRequest(e, http.MethodGet, "/v1/my-reservations", 99, h.MyReservations, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestManagerTableReservationsAccess(t *testing.T) {
	eng := newTestEngine(t)
	m := NewManagerHandler(eng, &repository.RestaurantRepo{}, &repository.TableRepo{})
	e := echo.New()

	// A client asking for the booking history is rejected before any
	// restaurant lookup happens.
	req := httptest.NewRequest(http.MethodGet, "/v1/manager/restaurants/10/tables/1/reservations", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(2))
	c.SetParamNames("id", "number")
	c.SetParamValues("10", "1")
	if err := m.TableReservations(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("client status = %d, want 403", rec.Code)
	}

	// The owning manager gets the (empty) history.
	req = httptest.NewRequest(http.MethodGet, "/v1/manager/restaurants/10/tables/1/reservations", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("user_id", uint64(1))
	c.SetParamNames("id", "number")
	c.SetParamValues("10", "1")
	if err := m.TableReservations(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("manager status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestClockRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"09:00", 9 * time.Hour},
		{"22:30", 22*time.Hour + 30*time.Minute},
		{"00:00", 0},
	}
	for _, tc := range cases {
		d, err := parseClockParam(tc.in)
		if err != nil {
			t.Fatalf("parseClockParam(%q): %v", tc.in, err)
		}
		if d != tc.want {
			t.Fatalf("parseClockParam(%q) = %v, want %v", tc.in, d, tc.want)
		}
		if got := clockString(d); got != tc.in {
			t.Fatalf("clockString(%v) = %q, want %q", d, got, tc.in)
		}
	}
	if _, err := parseClockParam("25:00"); err == nil {
		t.Fatal("parseClockParam accepted 25:00")
	}
}

func TestBookingStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{booking.ErrRestaurantNotFound, http.StatusNotFound},
		{booking.ErrTableNotFound, http.StatusNotFound},
		{booking.ErrReservationNotFound, http.StatusNotFound},
		{booking.ErrUserNoAccess, http.StatusForbidden},
		{booking.ErrManagerReservationNotAllowed, http.StatusForbidden},
		{booking.ErrBadPeopleNumber, http.StatusBadRequest},
		{booking.ErrDateTimeInThePast, http.StatusBadRequest},
		{booking.ErrReservationCannotBeCancelled, http.StatusBadRequest},
		{errors.New("anything else"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		if got := bookingStatus(tc.err); got != tc.want {
			t.Fatalf("bookingStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
