package dto

import (
	"sync"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/SscSPs/budget_reconciler/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by the request types:
//
//	yearmonth  a YYYY-MM month string
//	currency   an ISO 4217 code known to go-money
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
			return domain.IsValidMonthString(fl.Field().String())
		})
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return utils.IsKnownCurrency(fl.Field().String())
		})
	})
}
