package server

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/FrancoGW/fit-app/internal/license"
	"github.com/FrancoGW/fit-app/internal/member"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by request
// structs. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterValidation("licensetype", validLicenseType)
		v.RegisterValidation("paymentstatus", validPaymentStatus)
	})
}

func validLicenseType(fl validator.FieldLevel) bool {
	return validLicenseTypeValue(fl.Field().String())
}

func validPaymentStatus(fl validator.FieldLevel) bool {
	return validPaymentStatusValue(fl.Field().String())
}

func validLicenseTypeValue(value string) bool {
	switch license.LicenseType(value) {
	case license.TypeMonthly, license.TypeQuarterly, license.TypeSemiannual, license.TypeAnnual:
		return true
	}
	return false
}

func validPaymentStatusValue(value string) bool {
	switch value {
	case member.PaymentPaid, member.PaymentUnpaid:
		return true
	}
	return false
}
