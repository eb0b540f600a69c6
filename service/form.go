package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"loan-report/domain"
)

// ParseLoanForm turns raw form strings into a LoanInput. Values that are not
// numbers, not positive, or outside the service limits are rejected instead of
// being carried through the calculation.
func ParseLoanForm(form domain.LoanForm) (domain.LoanInput, error) {
	name := strings.TrimSpace(form.FullName)
	if utf8.RuneCountInString(name) > MaxFullNameLen {
		return domain.LoanInput{}, &domain.FieldError{
			Field: "fullName",
			Err:   fmt.Errorf("%w: longer than %d characters", domain.ErrOutOfRange, MaxFullNameLen),
		}
	}

	amount, err := parseDecimal("amount", form.Amount)
	if err != nil {
		return domain.LoanInput{}, err
	}

	term, err := strconv.Atoi(strings.TrimSpace(form.Term))
	if err != nil {
		return domain.LoanInput{}, &domain.FieldError{Field: "term", Value: form.Term, Err: domain.ErrInvalidNumericInput}
	}

	rate, err := parseDecimal("rate", form.Rate)
	if err != nil {
		return domain.LoanInput{}, err
	}

	start, err := time.Parse(StartDateLayout, strings.TrimSpace(form.StartDate))
	if err != nil {
		return domain.LoanInput{}, &domain.FieldError{Field: "startDate", Value: form.StartDate, Err: domain.ErrInvalidDate}
	}

	input := domain.LoanInput{
		FullName:          name,
		Amount:            amount,
		TermMonths:        term,
		AnnualRatePercent: rate,
		StartDate:         start,
	}
	if err := ValidateLoanInput(input); err != nil {
		return domain.LoanInput{}, err
	}
	return input, nil
}

// ValidateLoanInput checks the numeric ranges the calculator relies on.
func ValidateLoanInput(input domain.LoanInput) error {
	if input.Amount <= 0 {
		return &domain.FieldError{Field: "amount", Err: fmt.Errorf("%w: must be positive", domain.ErrInvalidNumericInput)}
	}
	if input.Amount > MaxLoanAmount {
		return &domain.FieldError{Field: "amount", Err: fmt.Errorf("%w: exceeds %.2f", domain.ErrOutOfRange, MaxLoanAmount)}
	}
	if input.AnnualRatePercent < 0 {
		return &domain.FieldError{Field: "rate", Err: fmt.Errorf("%w: must not be negative", domain.ErrInvalidNumericInput)}
	}
	if input.AnnualRatePercent > MaxInterestRate {
		return &domain.FieldError{Field: "rate", Err: fmt.Errorf("%w: exceeds %.2f%%", domain.ErrOutOfRange, MaxInterestRate)}
	}
	if input.TermMonths < MinTermMonths {
		return &domain.FieldError{Field: "term", Err: fmt.Errorf("%w: must be at least %d", domain.ErrInvalidNumericInput, MinTermMonths)}
	}
	if input.TermMonths > MaxTermMonths {
		return &domain.FieldError{Field: "term", Err: fmt.Errorf("%w: exceeds %d months", domain.ErrOutOfRange, MaxTermMonths)}
	}
	if input.StartDate.IsZero() {
		return &domain.FieldError{Field: "startDate", Err: domain.ErrInvalidDate}
	}
	return nil
}

func parseDecimal(field, raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, &domain.FieldError{Field: field, Value: raw, Err: domain.ErrInvalidNumericInput}
	}
	return d.InexactFloat64(), nil
}
