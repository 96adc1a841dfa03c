package handler

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ledger/backend/internal/domain/billing"
)

var registerOnce sync.Once

// RegisterValidators installs the domain value validations used by the
// binding tags on request payloads. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("contract_term", func(fl validator.FieldLevel) bool {
			return billing.ContractTerm(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("recurrence", func(fl validator.FieldLevel) bool {
			return billing.Recurrence(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("item_class", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return billing.AssetClass(s).IsValid() || billing.UserClass(s).IsValid()
		})
	})
}
