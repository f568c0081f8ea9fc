// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rohitdhavare/my-expenses-tracker/internal/calendar"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v. Decimal fields are
// validated through their string form, so "money" applies to them too.
func RegisterOn(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	_ = v.RegisterValidation("expense_type", validateExpenseType)
	_ = v.RegisterValidation("bill_frequency", validateBillFrequency)
	_ = v.RegisterValidation("civil_date", validateCivilDate)
	_ = v.RegisterValidation("money", validateMoney)
}

func validateExpenseType(fl validator.FieldLevel) bool {
	switch models.ExpenseType(fl.Field().String()) {
	case models.ExpenseTypePersonal, models.ExpenseTypeProfessional:
		return true
	}
	return false
}

func validateBillFrequency(fl validator.FieldLevel) bool {
	switch models.BillFrequency(fl.Field().String()) {
	case models.BillFrequencyDaily, models.BillFrequencyWeekly,
		models.BillFrequencyMonthly, models.BillFrequencyYearly:
		return true
	}
	return false
}

// validateCivilDate accepts YYYY-MM-DD strings.
func validateCivilDate(fl validator.FieldLevel) bool {
	_, err := calendar.Parse(fl.Field().String())
	return err == nil
}

// validateMoney accepts non-negative decimal strings.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !d.IsNegative()
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}
