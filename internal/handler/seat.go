package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-seat-booking/internal/booking"
	"github.com/iliyamo/event-seat-booking/internal/middleware"
	"github.com/iliyamo/event-seat-booking/internal/model"
	"github.com/iliyamo/event-seat-booking/internal/seating"
	"github.com/iliyamo/event-seat-booking/internal/service"
)

// SeatHandler serves the seat picker: the public layout, the viewer's seat
// map, seat clicks and booking submission.  Viewer routes expect JWTAuth to
// have run.
type SeatHandler struct {
	Svc *service.SeatService
}

// NewSeatHandler constructs a SeatHandler.  svc must be non-nil.
func NewSeatHandler(svc *service.SeatService) *SeatHandler {
	if svc == nil {
		panic("nil service passed to NewSeatHandler")
	}
	return &SeatHandler{Svc: svc}
}

// layoutCell and layoutRow are the public layout shape; occupancy is never
// exposed here so the response can be cached.
type layoutCell struct {
	ID     string `json:"id,omitempty"`
	Type   string `json:"type"`
	Number int    `json:"number,omitempty"`
}

type layoutRow struct {
	Label string       `json:"label"`
	Seats []layoutCell `json:"seats"`
}

func layoutRows(m seating.SeatMap) []layoutRow {
	out := make([]layoutRow, 0, m.Len())
	for _, r := range m.Rows {
		lr := layoutRow{Label: r.Label, Seats: make([]layoutCell, 0, len(r.Cells))}
		for _, cell := range r.Cells {
			lr.Seats = append(lr.Seats, layoutCell{ID: cell.ID, Type: cell.Type.String(), Number: cell.Number})
		}
		out = append(out, lr)
	}
	return out
}

// Layout handles GET /v1/events/:id/layout.
func (h *SeatHandler) Layout(c echo.Context) error {
	eventID := strings.TrimSpace(c.Param("id"))
	ev, res, err := h.Svc.ResolveLayout(c.Request().Context(), eventID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"event": echo.Map{
			"id":         string(ev.ID),
			"name":       ev.Name,
			"auditorium": ev.Auditorium,
			"date":       ev.Date,
			"time":       ev.Time,
		},
		"source":   res.Source,
		"capacity": res.Map.Capacity(),
		"rows":     layoutRows(res.Map),
	})
}

// Seats handles GET /v1/events/:id/seats?schedule=.  Every call reloads
// occupancy; the viewer's selection is kept when it is still valid.
func (h *SeatHandler) Seats(c echo.Context) error {
	viewer := middleware.ViewerID(c)
	v, err := h.Svc.Load(c.Request().Context(), viewer, c.Param("id"), c.QueryParam("schedule"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

type selectRequest struct {
	SeatID   string `json:"seat_id" validate:"required,max=16"`
	Schedule string `json:"schedule" validate:"max=128"`
}

// Select handles POST /v1/events/:id/seats/select.  Ignored clicks are not
// errors: the response carries the outcome and, for locked rows, a notice.
func (h *SeatHandler) Select(c echo.Context) error {
	var req selectRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	res, err := h.Svc.Click(c.Request().Context(), middleware.ViewerID(c), c.Param("id"), req.Schedule, strings.TrimSpace(req.SeatID))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ClearSelection handles DELETE /v1/events/:id/seats/select?schedule=.
func (h *SeatHandler) ClearSelection(c echo.Context) error {
	v, err := h.Svc.ClearSelection(c.Request().Context(), middleware.ViewerID(c), c.Param("id"), c.QueryParam("schedule"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

type bookRequest struct {
	Schedule string `json:"schedule" validate:"max=128"`
}

// Book handles POST /v1/events/:id/bookings.
//
//	201 {"status":"success","booking_id":...,"view":...}
//	400 no seat selected
//	409 seat rejected; view holds reloaded occupancy
//	502 booking system unreachable; the selection is kept
func (h *SeatHandler) Book(c echo.Context) error {
	var req bookRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	out, err := h.Svc.Book(c.Request().Context(), middleware.ViewerID(c), c.Param("id"), req.Schedule)

	var conflict *booking.SeatConflictError
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, echo.Map{
			"status":     "success",
			"booking_id": out.BookingID,
			"view":       out.View,
		})
	case errors.Is(err, booking.ErrNoSelection):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":   conflict.Reason,
			"seat_id": conflict.SeatID,
			"view":    out.View,
		})
	case errors.Is(err, booking.ErrNetwork):
		log.Printf("booking: submit failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{
			"error": booking.ReasonNetwork,
			"view":  out.View,
		})
	}
	return writeServiceError(c, err)
}

type previewRequest struct {
	Rows int                      `json:"rows" validate:"required,min=1,max=500"`
	Cols int                      `json:"cols" validate:"required,min=1,max=500"`
	Grid [][]seating.SeatTypeCode `json:"grid" validate:"required"`
}

// LayoutPreview handles POST /v1/admin/layouts/preview.  It lets an
// administrator check a layout before storing it.
func (h *SeatHandler) LayoutPreview(c echo.Context) error {
	var req previewRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	m, err := seating.ParseLayout(seating.SeatLayout{Rows: req.Rows, Cols: req.Cols, Grid: req.Grid})
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"capacity": m.Capacity(),
		"rows":     layoutRows(m),
	})
}

// writeServiceError maps failures common to every seat route.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrEventNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, service.ErrSuperseded):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrOccupancyUnavailable), errors.Is(err, booking.ErrNetwork):
		log.Printf("seat-api: upstream failure: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "booking system unavailable"})
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to write
		return err
	}
	log.Printf("seat-api: unexpected error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
