package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/roman-z-solik/table-booking/models"
	"github.com/roman-z-solik/table-booking/utils"
)

var errMissingContact = errors.New("name and email are required")

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// CreateFeedback stores a contact-form message. The endpoint is public;
// when the caller sent a valid token, name and email fall back to the
// account values if omitted.
func (fc *FeedbackController) CreateFeedback(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email" binding:"omitempty,email"`
		Phone   string `json:"phone"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name == "" || req.Email == "" {
		if user := fc.optionalUser(c); user != nil {
			if req.Name == "" {
				req.Name = user.Name
			}
			if req.Email == "" {
				req.Email = user.Email
			}
		}
	}
	if req.Name == "" || req.Email == "" {
		utils.RespondError(c, http.StatusBadRequest, errMissingContact)
		return
	}

	feedback := models.Feedback{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := fc.DB.Create(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Feedback received from %s", feedback.Email)
	utils.RespondJSON(c, http.StatusCreated, "Thank you for your message, we will get back to you shortly", feedback)
}

// ListFeedback returns every stored message, newest first. Admin only.
func (fc *FeedbackController) ListFeedback(c *gin.Context) {
	var feedback []models.Feedback
	if err := fc.DB.Order("created_at DESC").Find(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of feedback", feedback)
}

// optionalUser resolves the account behind an Authorization header when one
// is present and valid. The feedback endpoint stays usable without it.
func (fc *FeedbackController) optionalUser(c *gin.Context) *models.User {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil || claims == nil {
		return nil
	}

	var user models.User
	if err := fc.DB.First(&user, claims.UserID).Error; err != nil {
		return nil
	}
	return &user
}
