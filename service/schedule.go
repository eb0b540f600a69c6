package service

import (
	"math"

	"loan-report/domain"
)

// roundTo2Decimals redondea un float64 a 2 decimales (solo para resúmenes,
// el calendario mantiene precisión completa).
func roundTo2Decimals(value float64) float64 {
	rounded := math.Round(value*100) / 100
	if rounded == 0 {
		return 0 // drop the sign of -0
	}
	return rounded
}

// PeriodicPayment returns the fixed annuity payment for principal p over n
// periods at periodic rate r. A zero rate degenerates to p/n.
//
// 1-(1+r)^-n is evaluated as -expm1(-n*log1p(r)) so rates too small to change
// 1+r in float64 stay accurate instead of dividing by zero.
func PeriodicPayment(p float64, r float64, n int) float64 {
	flat := p / float64(n)
	if r == 0 {
		return flat
	}
	denom := -math.Expm1(-float64(n) * math.Log1p(r))
	if denom == 0 {
		return flat
	}
	payment := p * r / denom
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return flat
	}
	return payment
}

// CalculateSchedule builds the amortization schedule for a validated input.
// Period i is dated start+i months; day overflow rolls into the next month the
// same way time.Time.AddDate normalises it (Jan 31 + 1 month = Mar 2 or 3).
func CalculateSchedule(input domain.LoanInput) domain.AmortizationResult {
	r := input.MonthlyRate()
	n := input.TermMonths
	payment := PeriodicPayment(input.Amount, r, n)

	balance := input.Amount
	schedule := make([]domain.PaymentPeriod, 0, n)
	for i := 0; i < n; i++ {
		interest := balance * r
		principal := payment - interest
		balance -= principal

		schedule = append(schedule, domain.PaymentPeriod{
			Date:             input.StartDate.AddDate(0, i, 0),
			RemainingBalance: balance,
			Interest:         interest,
			Principal:        principal,
			Payment:          payment,
		})
	}

	return domain.AmortizationResult{
		PeriodicPayment: payment,
		Schedule:        schedule,
	}
}
