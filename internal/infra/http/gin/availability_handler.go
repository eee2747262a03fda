package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/dto"
	"staybook/internal/app/reservations"
)

type AvailabilityHandler struct {
	Service *reservations.Service
}

// Check answers whether a property is free for the stay given by the
// check_in and check_out query parameters.
func (h AvailabilityHandler) Check(c *gin.Context) {
	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	propertyID := c.Param("propertyId")
	free, err := h.Service.IsAvailable(c.Request.Context(), propertyID, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Availability{
		PropertyID: propertyID,
		CheckIn:    c.Query("check_in"),
		CheckOut:   c.Query("check_out"),
		Available:  free,
	})
}

func (h AvailabilityHandler) Quote(c *gin.Context) {
	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	propertyID := c.Param("propertyId")
	price, err := h.Service.Quote(c.Request.Context(), propertyID, checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Quote{
		PropertyID: propertyID,
		CheckIn:    c.Query("check_in"),
		CheckOut:   c.Query("check_out"),
		TotalCents: price,
	})
}

func (h AvailabilityHandler) OccupiedDays(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return
	}
	propertyID := c.Param("id")
	days, err := h.Service.OccupiedDays(c.Request.Context(), propertyID, month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapOccupiedDays(propertyID, month, year, days))
}

var _ AvailabilityHTTP = AvailabilityHandler{}
