package handlers

import (
	"log/slog"
	"sync"

	"github.com/404twillCODE/Casino-Session-Tracker/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags used by the request DTOs
// to gin's validator engine. It must run before any request is bound.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			slog.Error("Gin validator engine is not go-playground/validator; custom tags not registered")
			return
		}
		if err := v.RegisterValidation("money", validateMoney); err != nil {
			slog.Error("Failed to register money validator", slog.String("error", err.Error()))
		}
	})
}

// validateMoney accepts a positive dollar amount such as "20", "$20.50" or "1,000".
func validateMoney(fl validator.FieldLevel) bool {
	cents, err := utils.ParseMoneyToCents(fl.Field().String())
	return err == nil && cents > 0
}
