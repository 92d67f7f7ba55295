package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roman-z-solik/table-booking/services"
	"github.com/roman-z-solik/table-booking/utils"
)

type BookingController struct {
	DB      *gorm.DB
	Service *services.BookingService
}

func NewBookingController(db *gorm.DB, service *services.BookingService) *BookingController {
	return &BookingController{DB: db, Service: service}
}

// CreateBooking books a table for the authenticated user.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req struct {
		TableID         uint   `json:"table_id" binding:"required"`
		Date            string `json:"date" binding:"required,dateymd"`
		StartTime       string `json:"start_time" binding:"required,timehhmm"`
		DurationHours   int    `json:"duration_hours" binding:"required,min=1"`
		GuestsCount     int    `json:"guests_count" binding:"required,min=1"`
		SpecialRequests string `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Service.Create(currentUserID(c), services.BookingInput{
		TableID:         req.TableID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationHours:   req.DurationHours,
		GuestsCount:     req.GuestsCount,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.InfoLogger.Printf("Booking %s created: table %d on %s %s-%s",
		booking.Reference, booking.Table.Number, booking.Date, booking.StartTime, booking.EndTime)
	utils.RespondJSON(c, http.StatusCreated, "Table booked successfully", booking)
}

// ListBookings returns the authenticated user's bookings, newest first.
func (bc *BookingController) ListBookings(c *gin.Context) {
	bookings, err := bc.Service.ListForUser(currentUserID(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// GetBooking returns one booking owned by the authenticated user.
func (bc *BookingController) GetBooking(c *gin.Context) {
	bookingID, err := paramUint(c, "booking_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Service.GetForUser(currentUserID(c), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// UpdateBooking edits a booking. Omitted fields keep their current value,
// so a request changing only special_requests never re-checks availability.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	bookingID, err := paramUint(c, "booking_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		TableID         *uint   `json:"table_id"`
		Date            *string `json:"date" binding:"omitempty,dateymd"`
		StartTime       *string `json:"start_time" binding:"omitempty,timehhmm"`
		DurationHours   *int    `json:"duration_hours" binding:"omitempty,min=1"`
		GuestsCount     *int    `json:"guests_count" binding:"omitempty,min=1"`
		SpecialRequests *string `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID := currentUserID(c)
	existing, err := bc.Service.GetForUser(userID, bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	in := services.BookingInput{
		TableID:         existing.TableID,
		Date:            existing.Date,
		StartTime:       existing.StartTime,
		DurationHours:   existing.DurationHours,
		GuestsCount:     existing.GuestsCount,
		SpecialRequests: existing.SpecialRequests,
	}
	if req.TableID != nil {
		in.TableID = *req.TableID
	}
	if req.Date != nil {
		in.Date = *req.Date
	}
	if req.StartTime != nil {
		in.StartTime = *req.StartTime
	}
	if req.DurationHours != nil {
		in.DurationHours = *req.DurationHours
	}
	if req.GuestsCount != nil {
		in.GuestsCount = *req.GuestsCount
	}
	if req.SpecialRequests != nil {
		in.SpecialRequests = *req.SpecialRequests
	}

	booking, err := bc.Service.Edit(userID, bookingID, in)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.InfoLogger.Printf("Booking %s updated", booking.Reference)
	utils.RespondJSON(c, http.StatusOK, "Booking updated", booking)
}

// CancelBooking cancels an active booking owned by the authenticated user.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	bookingID, err := paramUint(c, "booking_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Service.Cancel(currentUserID(c), bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.InfoLogger.Printf("Booking %s cancelled", booking.Reference)
	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", booking)
}

func paramUint(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

// respondBookingError maps the service error taxonomy onto HTTP. Storage
// failures stay generic; the typed failures carry their detail.
func respondBookingError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var conflictErr *services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		utils.RespondErrorData(c, http.StatusBadRequest, "Validation failed", gin.H{
			"errors": validationErr.Fields(),
		})
	case errors.As(err, &conflictErr):
		utils.RespondErrorData(c, http.StatusConflict, "Table is busy at the selected time", gin.H{
			"busy_times": conflictErr.BusyTimes,
		})
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, errors.New("booking or table not found"))
	default:
		utils.ErrorLogger.Printf("Booking operation failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("booking operation failed"))
	}
}
