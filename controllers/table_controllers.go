package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roman-z-solik/table-booking/availability"
	"github.com/roman-z-solik/table-booking/config"
	"github.com/roman-z-solik/table-booking/models"
	"github.com/roman-z-solik/table-booking/services"
	"github.com/roman-z-solik/table-booking/utils"
)

type TableController struct {
	DB      *gorm.DB
	Service *services.BookingService
	Rest    config.Restaurant
}

func NewTableController(db *gorm.DB, service *services.BookingService, rest config.Restaurant) *TableController {
	return &TableController{DB: db, Service: service, Rest: rest}
}

// maxCapacityErr caps table sizes at the restaurant-wide guest limit.
func (tc *TableController) maxCapacityErr(capacity int) error {
	if tc.Rest.MaxTableCapacity > 0 && capacity > tc.Rest.MaxTableCapacity {
		return fmt.Errorf("capacity must be between 1 and %d", tc.Rest.MaxTableCapacity)
	}
	return nil
}

// GetAllTables lists the tables open for booking.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Where("is_active = ?", true).Order("number").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableCapacity returns the capacity lookup the booking form uses.
// Missing and deactivated tables both answer 404.
func (tc *TableController) GetTableCapacity(c *gin.Context) {
	tableID, err := paramUint(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("id = ? AND is_active = ?", tableID, true).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table capacity", gin.H{
		"capacity":     table.Capacity,
		"table_number": table.Number,
	})
}

// GetBusyTimes lists the occupied windows of a table on a date, ordered by
// start time, for the booking form and conflict messages.
func (tc *TableController) GetBusyTimes(c *gin.Context) {
	tableID, err := paramUint(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date := c.Query("date")
	if _, err := time.Parse(availability.DateLayout, date); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date query parameter must be YYYY-MM-DD"))
		return
	}

	busy, err := tc.Service.BusyTimes(tableID, date)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Busy times", gin.H{
		"date":       date,
		"busy_times": busy,
	})
}

// CreateTable adds a table. Admin only.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number      int    `json:"number" binding:"required,min=1"`
		Capacity    int    `json:"capacity" binding:"required,min=1"`
		IsVIP       bool   `json:"is_vip"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := tc.maxCapacityErr(req.Capacity); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		Number:      req.Number,
		Capacity:    req.Capacity,
		IsVIP:       req.IsVIP,
		IsActive:    true,
		Description: req.Description,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table number already exists"))
		return
	}

	utils.InfoLogger.Printf("New table created: #%d (capacity=%d)", table.Number, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTablesAdmin lists every table including deactivated ones.
func (tc *TableController) GetAllTablesAdmin(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("number").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// UpdateTable edits table attributes. Setting is_active to false removes
// the table from booking eligibility while keeping its history.
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID, err := paramUint(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Number      *int    `json:"number" binding:"omitempty,min=1"`
		Capacity    *int    `json:"capacity" binding:"omitempty,min=1"`
		IsVIP       *bool   `json:"is_vip"`
		IsActive    *bool   `json:"is_active"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Capacity != nil {
		if err := tc.maxCapacityErr(*req.Capacity); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}

	if req.Number != nil {
		table.Number = *req.Number
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.IsVIP != nil {
		table.IsVIP = *req.IsVIP
	}
	if req.IsActive != nil {
		table.IsActive = *req.IsActive
	}
	if req.Description != nil {
		table.Description = *req.Description
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table #%d updated (active=%v)", table.Number, table.IsActive)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}
