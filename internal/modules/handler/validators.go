package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sangamhq/sangam/internal/modules/service"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// "utr" accepts anything that normalizes to a valid transaction
		// reference; the service stores the normalized form.
		_ = v.RegisterValidation("utr", func(fl validator.FieldLevel) bool {
			_, err := service.NormalizeUTR(fl.Field().String())
			return err == nil
		})
	}
}
