package controllers

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/roman-z-solik/table-booking/availability"
)

// RegisterValidators installs the date/time format validators used by the
// booking request bindings. Safe to call more than once.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("dateymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(availability.DateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("timehhmm", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(availability.TimeLayout, fl.Field().String())
		return err == nil
	})
}
