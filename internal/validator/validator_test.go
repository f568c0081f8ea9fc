package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type sample struct {
	ExpenseType string `validate:"omitempty,expense_type"`
	Frequency   string `validate:"omitempty,bill_frequency"`
	Date        string `validate:"omitempty,civil_date"`
	Amount      string `validate:"omitempty,money"`
}

func TestCustomValidators(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{"empty", sample{}, false},
		{"valid", sample{ExpenseType: "PROFESSIONAL", Frequency: "YEARLY", Date: "2024-02-29", Amount: "10.50"}, false},
		{"lowercase_type", sample{ExpenseType: "personal"}, true},
		{"unknown_frequency", sample{Frequency: "HOURLY"}, true},
		{"bad_date", sample{Date: "2023-02-29"}, true},
		{"timestamp_date", sample{Date: "2024-01-01T00:00:00Z"}, true},
		{"negative_amount", sample{Amount: "-1"}, true},
		{"not_a_number", sample{Amount: "ten"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type amounts struct {
	Amount decimal.Decimal  `validate:"money"`
	Limit  *decimal.Decimal `validate:"required,money"`
	Cap    *decimal.Decimal `validate:"omitempty,money"`
}

func TestMoneyOnDecimalFields(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	ten := decimal.NewFromInt(10)
	negative := decimal.NewFromInt(-5)

	tests := []struct {
		name    string
		in      amounts
		wantErr bool
	}{
		{"valid", amounts{Amount: ten, Limit: &ten}, false},
		{"zero_is_allowed", amounts{Amount: decimal.Zero, Limit: &ten}, false},
		{"missing_limit", amounts{Amount: ten}, true},
		{"negative_amount", amounts{Amount: negative, Limit: &ten}, true},
		{"negative_limit", amounts{Amount: ten, Limit: &negative}, true},
		{"negative_optional", amounts{Amount: ten, Limit: &ten, Cap: &negative}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
