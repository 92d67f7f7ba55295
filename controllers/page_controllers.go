package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roman-z-solik/table-booking/models"
	"github.com/roman-z-solik/table-booking/utils"
)

type PageController struct {
	DB *gorm.DB
}

func NewPageController(db *gorm.DB) *PageController {
	return &PageController{DB: db}
}

var validPageTypes = map[string]bool{
	models.PageAbout:   true,
	models.PageGallery: true,
	models.PageMenu:    true,
	models.PageTeam:    true,
}

// GetPage returns an active content page with its attached records in
// their configured order.
func (pc *PageController) GetPage(c *gin.Context) {
	pageType := c.Param("page_type")
	if !validPageTypes[pageType] {
		utils.RespondError(c, http.StatusNotFound, errors.New("unknown page"))
		return
	}

	var page models.Page
	err := pc.DB.
		Preload("GalleryImages", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("TeamMembers", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Where("page_type = ? AND is_active = ?", pageType, true).
		First(&page).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("page not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Page content", page)
}

// UpdatePage edits a content page. Admin only.
func (pc *PageController) UpdatePage(c *gin.Context) {
	pageType := c.Param("page_type")

	var req struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var page models.Page
	if err := pc.DB.Where("page_type = ?", pageType).First(&page).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("page not found"))
		return
	}

	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Content != nil {
		page.Content = *req.Content
	}
	if req.IsActive != nil {
		page.IsActive = *req.IsActive
	}

	if err := pc.DB.Save(&page).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Page %q updated", page.PageType)
	utils.RespondJSON(c, http.StatusOK, "Page updated", page)
}
