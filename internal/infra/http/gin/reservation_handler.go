package ginserver

import (
	"context"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/dto"
	"staybook/internal/app/reservations"
	"staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/daterange"
)

type ReservationHandler struct {
	Service *reservations.Service
}

func (h ReservationHandler) List(c *gin.Context) {
	items, err := h.Service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservations(items))
}

func (h ReservationHandler) Get(c *gin.Context) {
	res, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(res))
}

type saveReservationRequest struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	ClientID   string `json:"client_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
	PriceCents int64  `json:"price_cents"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
	Code       string `json:"code"`
}

// Save is the plain insert-or-update endpoint; it does not run availability
// or lifecycle checks.
func (h ReservationHandler) Save(c *gin.Context) {
	var req saveReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dr, err := parseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		respondError(c, err)
		return
	}
	status := reservation.StatusPending
	if req.Status != "" {
		status, err = reservation.ParseStatus(req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	ctx := c.Request.Context()
	var res *reservation.Reservation
	if req.ID != "" {
		res, err = h.Service.Get(ctx, req.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		res.Range = dr
		res.Guests = req.Guests
		res.PriceCents = req.PriceCents
		res.Status = status
		res.Notes = req.Notes
	} else {
		res = &reservation.Reservation{
			PropertyID: req.PropertyID,
			ClientID:   req.ClientID,
			Range:      dr,
			Guests:     req.Guests,
			PriceCents: req.PriceCents,
			Status:     status,
			Notes:      req.Notes,
			Code:       req.Code,
			CreatedAt:  time.Now().UTC(),
		}
	}
	saved, err := h.Service.Save(ctx, res)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(saved))
}

func (h ReservationHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type bookReservationRequest struct {
	PropertyID string `json:"property_id"`
	ClientID   string `json:"client_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
	Notes      string `json:"notes"`
	PriceCents *int64 `json:"price_cents"`
	Status     string `json:"status"`
	Code       string `json:"code"`
}

func (h ReservationHandler) Book(c *gin.Context) {
	var req bookReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.Service.Book(c.Request.Context(), reservations.BookParams{
		PropertyID: req.PropertyID,
		ClientID:   req.ClientID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
		Notes:      req.Notes,
		PriceCents: req.PriceCents,
		Status:     reservation.Status(req.Status),
		Code:       req.Code,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapReservation(res))
}

func (h ReservationHandler) Confirm(c *gin.Context) {
	h.lifecycle(c, h.Service.Confirm)
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	h.lifecycle(c, h.Service.Cancel)
}

func (h ReservationHandler) CheckIn(c *gin.Context) {
	h.lifecycle(c, h.Service.CheckIn)
}

func (h ReservationHandler) CheckOut(c *gin.Context) {
	h.lifecycle(c, h.Service.CheckOut)
}

func (h ReservationHandler) lifecycle(c *gin.Context, op func(ctx context.Context, id string) (*reservation.Reservation, error)) {
	res, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(res))
}

type updateReservationRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Guests   int    `json:"guests"`
	Notes    string `json:"notes"`
}

func (h ReservationHandler) Update(c *gin.Context) {
	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.Service.Update(c.Request.Context(), c.Param("id"), reservations.UpdateParams{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(res))
}

func (h ReservationHandler) SendConfirmation(c *gin.Context) {
	if err := h.Service.SendConfirmation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

func (h ReservationHandler) SendReminder(c *gin.Context) {
	if err := h.Service.SendReminder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}

func (h ReservationHandler) ByClient(c *gin.Context) {
	items, err := h.Service.ByClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservations(items))
}

func (h ReservationHandler) ByProperty(c *gin.Context) {
	items, err := h.Service.ByProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservations(items))
}

func (h ReservationHandler) ByStatus(c *gin.Context) {
	items, err := h.Service.ByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservations(items))
}

func (h ReservationHandler) ByCode(c *gin.Context) {
	res, err := h.Service.ByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservation(res))
}

func (h ReservationHandler) CreatedBetween(c *gin.Context) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	items, err := h.Service.CreatedBetween(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapReservations(items))
}

func parseRange(checkIn, checkOut string) (daterange.DateRange, error) {
	start, err := parseDate(checkIn)
	if err != nil {
		return daterange.DateRange{}, daterange.ErrInvalidRange
	}
	end, err := parseDate(checkOut)
	if err != nil {
		return daterange.DateRange{}, daterange.ErrInvalidRange
	}
	return daterange.New(start, end)
}

var _ ReservationHTTP = ReservationHandler{}
