package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roman-z-solik/table-booking/config"
	"github.com/roman-z-solik/table-booking/utils"
)

// RestaurantInfo serves the restaurant contact card and operating hours
// every page of the site displays.
func RestaurantInfo(rest config.Restaurant) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "Restaurant info", gin.H{
			"name":        rest.Name,
			"description": rest.Description,
			"phone":       rest.ContactPhone,
			"email":       rest.ContactEmail,
			"address":     rest.Address,
			"open_time":   rest.OpenTime,
			"close_time":  rest.CloseTime,
		})
	}
}
