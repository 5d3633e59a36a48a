package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-reservation/internal/booking"
	"github.com/iliyamo/movie-reservation/internal/model"
	"github.com/iliyamo/movie-reservation/internal/queue"
)

// ReservationHandler exposes the booking engine over HTTP.  Publish, when
// set, is called after a successful booking with the corresponding event;
// publishing is best effort and never affects the response.
type ReservationHandler struct {
	Engine  *booking.Engine
	Publish func(ctx context.Context, ev queue.ReservationCreatedEvent) error
}

func NewReservationHandler(engine *booking.Engine, publish func(ctx context.Context, ev queue.ReservationCreatedEvent) error) *ReservationHandler {
	if engine == nil {
		panic("nil engine passed to NewReservationHandler")
	}
	return &ReservationHandler{Engine: engine, Publish: publish}
}

// createReservationReq is the booking request body.  SeanceID is a pointer
// so a missing field can be told apart from a legitimate zero.
type createReservationReq struct {
	SeanceID        *int64 `json:"seanceId"`
	DateReservation string `json:"dateReservation"`
}

// Create handles POST /reservations.  The body must carry a numeric
// seanceId and an ISO 8601 dateReservation; a window collision is reported
// as 409 with the colliding window described in the error message.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SeanceID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seanceId required"})
	}
	requested, err := time.Parse(time.RFC3339, req.DateReservation)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dateReservation must be an ISO 8601 timestamp"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Engine.Book(ctx, userID, *req.SeanceID, requested)
	if err != nil {
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": conflict.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	if h.Publish != nil {
		ev := queue.ReservationCreatedEvent{
			ReservationID: b.ID,
			UserID:        b.UserID,
			SeanceID:      b.SeanceID,
			StartsAt:      b.HeureDebut,
			EndsAt:        b.HeureFin,
			CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pubCancel()
			if err := h.Publish(pubCtx, ev); err != nil {
				log.Printf("reservation: publish event failed: %v", err)
			}
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "reservation created successfully",
		"reservation": b,
	})
}

// List handles GET /reservations and returns every reservation owned by
// the authenticated user.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Engine.List(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	if list == nil {
		// An empty result must serialize as [], whatever the store returned.
		list = []model.Reservation{}
	}
	return c.JSON(http.StatusOK, list)
}

// Delete handles DELETE /reservations/:id.  Only the owner can cancel; a
// reservation belonging to someone else looks exactly like a missing one.
func (h *ReservationHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Engine.Cancel(ctx, id, userID); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete reservation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation cancelled"})
}
