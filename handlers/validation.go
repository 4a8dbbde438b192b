package handlers

import (
	"innkeep/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request models.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("paymode", func(fl validator.FieldLevel) bool {
		mode := models.PaymentMode(fl.Field().String())
		return mode.Collected()
	})
}
