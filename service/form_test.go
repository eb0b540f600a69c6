package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-report/domain"
)

func validForm() domain.LoanForm {
	return domain.LoanForm{
		FullName:  "  Ivan Ivanov ",
		Amount:    "10000000",
		Term:      "12",
		Rate:      "24",
		StartDate: "2024-01-15",
	}
}

func TestParseLoanForm_Valid(t *testing.T) {
	input, err := ParseLoanForm(validForm())
	require.NoError(t, err)

	assert.Equal(t, "Ivan Ivanov", input.FullName)
	assert.Equal(t, 10_000_000.0, input.Amount)
	assert.Equal(t, 12, input.TermMonths)
	assert.Equal(t, 24.0, input.AnnualRatePercent)
	assert.True(t, input.StartDate.Equal(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)))
}

func TestParseLoanForm_DecimalComma(t *testing.T) {
	form := validForm()
	form.Amount = "1500,50"
	form.Rate = "12,5"

	input, err := ParseLoanForm(form)
	require.NoError(t, err)
	assert.Equal(t, 1500.50, input.Amount)
	assert.Equal(t, 12.5, input.AnnualRatePercent)
}

func TestParseLoanForm_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.LoanForm)
		field   string
		wantErr error
	}{
		{"empty amount", func(f *domain.LoanForm) { f.Amount = "" }, "amount", domain.ErrInvalidNumericInput},
		{"text amount", func(f *domain.LoanForm) { f.Amount = "ten" }, "amount", domain.ErrInvalidNumericInput},
		{"zero amount", func(f *domain.LoanForm) { f.Amount = "0" }, "amount", domain.ErrInvalidNumericInput},
		{"negative amount", func(f *domain.LoanForm) { f.Amount = "-5" }, "amount", domain.ErrInvalidNumericInput},
		{"huge amount", func(f *domain.LoanForm) { f.Amount = "1e13" }, "amount", domain.ErrOutOfRange},
		{"fractional term", func(f *domain.LoanForm) { f.Term = "12.5" }, "term", domain.ErrInvalidNumericInput},
		{"zero term", func(f *domain.LoanForm) { f.Term = "0" }, "term", domain.ErrInvalidNumericInput},
		{"long term", func(f *domain.LoanForm) { f.Term = "601" }, "term", domain.ErrOutOfRange},
		{"missing rate", func(f *domain.LoanForm) { f.Rate = " " }, "rate", domain.ErrInvalidNumericInput},
		{"negative rate", func(f *domain.LoanForm) { f.Rate = "-1" }, "rate", domain.ErrInvalidNumericInput},
		{"absurd rate", func(f *domain.LoanForm) { f.Rate = "5000" }, "rate", domain.ErrOutOfRange},
		{"missing date", func(f *domain.LoanForm) { f.StartDate = "" }, "startDate", domain.ErrInvalidDate},
		{"bad date", func(f *domain.LoanForm) { f.StartDate = "15.01.2024" }, "startDate", domain.ErrInvalidDate},
		{"long name", func(f *domain.LoanForm) { f.FullName = strings.Repeat("я", MaxFullNameLen+1) }, "fullName", domain.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := ParseLoanForm(form)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, domain.IsInputError(err))

			var fieldErr *domain.FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestParseLoanForm_EmptyNameAllowed(t *testing.T) {
	form := validForm()
	form.FullName = ""

	input, err := ParseLoanForm(form)
	require.NoError(t, err)
	assert.Empty(t, input.FullName)
}

func TestParseLoanForm_ZeroRateAllowed(t *testing.T) {
	form := validForm()
	form.Rate = "0"

	input, err := ParseLoanForm(form)
	require.NoError(t, err)
	assert.Zero(t, input.AnnualRatePercent)
}
