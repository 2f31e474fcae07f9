package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"
	"github.com/iliyamo/restaurant-table-reservation/internal/model"
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"
	"github.com/iliyamo/restaurant-table-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/restaurant-table-reservation/internal/service"
)

// CustomerHandler serves availability lookups and the reservation
// lifecycle for diners.  The engine is the source of truth; MySQL and
// RabbitMQ are written after the commit, off the request path.
type CustomerHandler struct {
	Engine       *booking.Engine
	Reservations *repository.ReservationRepo
	AMQPURL      string
}

func NewCustomerHandler(eng *booking.Engine, rr *repository.ReservationRepo, amqpURL string) *CustomerHandler {
	if eng == nil || rr == nil {
		panic("nil dependency passed to NewCustomerHandler")
	}
	return &CustomerHandler{Engine: eng, Reservations: rr, AMQPURL: amqpURL}
}

type reservationResp struct {
	ID           uint64 `json:"id"`
	UserID       uint64 `json:"user_id"`
	RestaurantID uint64 `json:"restaurant_id"`
	TableNumber  int    `json:"table_number"`
	Time         string `json:"time"`
	Status       string `json:"status"`
}

func toReservationResp(r model.Reservation) reservationResp {
	return reservationResp{
		ID:           r.ID,
		UserID:       r.UserID,
		RestaurantID: r.RestaurantID,
		TableNumber:  r.TableNumber,
		Time:         r.Time.Format(time.RFC3339),
		Status:       string(r.Status),
	}
}

// AvailableTimes handles
// GET /v1/restaurants/:id/available-times?people=N&date=YYYY-MM-DD.
// It returns every bookable slot start for the party size on that day.
func (h *CustomerHandler) AvailableTimes(c echo.Context) error {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	people, err := strconv.Atoi(c.QueryParam("people"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "people is required"})
	}
	date, err := parseDateParam(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	times, err := h.Engine.AvailableTimes(restaurantID, people, date)
	if err != nil {
		return c.JSON(bookingStatus(err), echo.Map{"error": err.Error()})
	}
	out := make([]string, 0, len(times))
	for _, t := range times {
		out = append(out, t.Format(time.RFC3339))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"restaurant_id":   restaurantID,
		"people":          people,
		"date":            date.Format("2006-01-02"),
		"available_times": out,
	})
}

type reserveReq struct {
	People int    `json:"people"`
	Time   string `json:"time"` // RFC3339 slot start
}

// Reserve handles POST /v1/restaurants/:id/reserve.  The engine does
// the atomic check-then-commit; on success the row is persisted and a
// confirmation event published without blocking the response.
func (h *CustomerHandler) Reserve(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || restaurantID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	at, err := time.Parse(time.RFC3339, req.Time)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time must be RFC3339"})
	}

	res, err := h.Engine.Reserve(restaurantID, req.People, at, userID)
	if err != nil {
		return c.JSON(bookingStatus(err), echo.Map{"error": err.Error()})
	}

	logger := c.Echo().Logger
	go func(res model.Reservation, people int) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Reservations.Create(ctx, res); err != nil {
			logger.Errorf("persist reservation %d failed: %v", res.ID, err)
		}
		ev := queue.ReservationConfirmedEvent{
			ReservationID: res.ID,
			UserID:        res.UserID,
			RestaurantID:  res.RestaurantID,
			TableNumber:   res.TableNumber,
			People:        people,
			Time:          res.Time.Format(time.RFC3339),
			ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		if u, ok := h.Engine.User(res.UserID); ok {
			ev.Username = u.Username
		}
		if rest, err := h.Engine.Restaurant(res.RestaurantID); err == nil {
			ev.RestaurantName = rest.Name
		}
		if tables, err := h.Engine.TablesOf(res.RestaurantID); err == nil {
			for _, t := range tables {
				if t.Number == res.TableNumber {
					ev.Seats = t.Seats
					break
				}
			}
		}
		_ = queue_publisher.PublishReservationConfirmed(ctx, h.AMQPURL, ev)
	}(res, req.People)

	return c.JSON(http.StatusCreated, toReservationResp(res))
}

// Cancel handles DELETE /v1/reservations/:id.  Only the owning diner
// may cancel, and only while the reservation is active and upcoming.
func (h *CustomerHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reservationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	if err := h.Engine.Cancel(reservationID, userID); err != nil {
		return c.JSON(bookingStatus(err), echo.Map{"error": err.Error()})
	}

	logger := c.Echo().Logger
	go func(id, uid uint64) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Reservations.MarkCancelled(ctx, id); err != nil {
			logger.Errorf("persist cancellation %d failed: %v", id, err)
		}
		ev := queue.ReservationCancelledEvent{
			ReservationID: id,
			UserID:        uid,
			CancelledAt:   time.Now().UTC().Format(time.RFC3339),
		}
		for _, r := range mustUserReservations(h.Engine, uid) {
			if r.ID == id {
				ev.RestaurantID = r.RestaurantID
				ev.TableNumber = r.TableNumber
				ev.Time = r.Time.Format(time.RFC3339)
				if rest, err := h.Engine.Restaurant(r.RestaurantID); err == nil {
					ev.RestaurantName = rest.Name
				}
				break
			}
		}
		_ = queue_publisher.PublishReservationCancelled(ctx, h.AMQPURL, ev)
	}(reservationID, userID)

	return c.NoContent(http.StatusNoContent)
}

// MyReservations handles GET /v1/my-reservations and returns the
// diner's full history, cancelled stays included.
func (h *CustomerHandler) MyReservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Engine.UserReservations(userID)
	if err != nil {
		return c.JSON(bookingStatus(err), echo.Map{"error": err.Error()})
	}
	out := make([]reservationResp, 0, len(list))
	for _, r := range list {
		out = append(out, toReservationResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

func mustUserReservations(eng *booking.Engine, userID uint64) []model.Reservation {
	list, err := eng.UserReservations(userID)
	if err != nil {
		return nil
	}
	return list
}
