package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roman-z-solik/table-booking/availability"
	"github.com/roman-z-solik/table-booking/models"
	"github.com/roman-z-solik/table-booking/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats summarises bookings, tables and feedback counts.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format(availability.DateLayout)

	var stats struct {
		TotalBookings int64 `json:"total_bookings"`
		TodayBookings int64 `json:"today_bookings"`
		BookingStats  struct {
			Active    int64 `json:"active"`
			Cancelled int64 `json:"cancelled"`
		} `json:"booking_stats"`
		TableStats struct {
			Active   int64 `json:"active"`
			Inactive int64 `json:"inactive"`
		} `json:"table_stats"`
		TotalUsers    int64 `json:"total_users"`
		TotalFeedback int64 `json:"total_feedback"`
	}

	ac.DB.Model(&models.Booking{}).Count(&stats.TotalBookings)
	ac.DB.Model(&models.Booking{}).Where("date = ? AND status = ?", today, models.BookingStatusActive).
		Count(&stats.TodayBookings)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusActive).
		Count(&stats.BookingStats.Active)
	ac.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusCancelled).
		Count(&stats.BookingStats.Cancelled)

	ac.DB.Model(&models.Table{}).Where("is_active = ?", true).Count(&stats.TableStats.Active)
	ac.DB.Model(&models.Table{}).Where("is_active = ?", false).Count(&stats.TableStats.Inactive)

	ac.DB.Model(&models.User{}).Count(&stats.TotalUsers)
	ac.DB.Model(&models.Feedback{}).Count(&stats.TotalFeedback)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// dataDump is the JSON shape shared by export and import.
type dataDump struct {
	Tables        []models.Table        `json:"tables"`
	Bookings      []models.Booking      `json:"bookings"`
	Pages         []models.Page         `json:"pages"`
	GalleryImages []models.GalleryImage `json:"gallery_images"`
	MenuItems     []models.MenuItem     `json:"menu_items"`
	TeamMembers   []models.TeamMember   `json:"team_members"`
	Feedback      []models.Feedback     `json:"feedback"`
}

// ExportData dumps the restaurant data as one JSON document.
func (ac *AdminController) ExportData(c *gin.Context) {
	var dump dataDump

	ac.DB.Order("number").Find(&dump.Tables)
	ac.DB.Order("date, start_time").Find(&dump.Bookings)
	ac.DB.Find(&dump.Pages)
	ac.DB.Order("sort_order").Find(&dump.GalleryImages)
	ac.DB.Order("sort_order").Find(&dump.MenuItems)
	ac.DB.Order("sort_order").Find(&dump.TeamMembers)
	ac.DB.Order("created_at").Find(&dump.Feedback)

	c.Header("Content-Disposition", "attachment; filename=table-booking-export.json")
	c.JSON(http.StatusOK, dump)
}

// ImportData loads a previously exported dump. Records are saved one at a
// time; a bad record is logged and counted, the load keeps going.
func (ac *AdminController) ImportData(c *gin.Context) {
	var dump dataDump
	if err := c.ShouldBindJSON(&dump); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	loaded, failed := 0, 0
	save := func(record interface{}) {
		if err := ac.DB.Save(record).Error; err != nil {
			failed++
			utils.ErrorLogger.Printf("Import record failed: %v", err)
			return
		}
		loaded++
	}

	for i := range dump.Tables {
		save(&dump.Tables[i])
	}
	for i := range dump.Pages {
		save(&dump.Pages[i])
	}
	for i := range dump.GalleryImages {
		save(&dump.GalleryImages[i])
	}
	for i := range dump.MenuItems {
		save(&dump.MenuItems[i])
	}
	for i := range dump.TeamMembers {
		save(&dump.TeamMembers[i])
	}
	for i := range dump.Bookings {
		save(&dump.Bookings[i])
	}
	for i := range dump.Feedback {
		save(&dump.Feedback[i])
	}

	utils.InfoLogger.Printf("Import finished: %d loaded, %d failed", loaded, failed)
	utils.RespondJSON(c, http.StatusOK, "Import finished", gin.H{
		"loaded": loaded,
		"failed": failed,
	})
}
