package service

import (
	"github.com/rs/zerolog"

	"loan-report/domain"
)

type LoanService struct {
	logger zerolog.Logger
}

// NewLoanService creates a new LoanService.
func NewLoanService(logger zerolog.Logger) *LoanService {
	return &LoanService{logger: logger}
}

// Schedule validates the input and returns the full-precision schedule.
func (s *LoanService) Schedule(input domain.LoanInput) (domain.AmortizationResult, error) {
	// Validar entrada
	if err := ValidateLoanInput(input); err != nil {
		return domain.AmortizationResult{}, err
	}
	result := CalculateSchedule(input)

	s.logger.Debug().
		Float64("amount", input.Amount).
		Int("term", input.TermMonths).
		Float64("rate", input.AnnualRatePercent).
		Float64("payment", result.PeriodicPayment).
		Msg("schedule calculated")

	return result, nil
}

// CalculateLoan calculates the loan summary and schedule for the input.
func (s *LoanService) CalculateLoan(input domain.LoanInput) (domain.LoanResult, error) {
	result, err := s.Schedule(input)
	if err != nil {
		return domain.LoanResult{}, err
	}

	// Redondear solo el resumen, el PDF usa precisión completa
	total := result.TotalPayment()
	return domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(result.PeriodicPayment),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(total - input.Amount),
		Schedule:       roundSchedule(result.Schedule),
	}, nil
}

func roundSchedule(periods []domain.PaymentPeriod) []domain.PaymentPeriod {
	out := make([]domain.PaymentPeriod, len(periods))
	for i, p := range periods {
		out[i] = domain.PaymentPeriod{
			Date:             p.Date,
			RemainingBalance: roundTo2Decimals(p.RemainingBalance),
			Interest:         roundTo2Decimals(p.Interest),
			Principal:        roundTo2Decimals(p.Principal),
			Payment:          roundTo2Decimals(p.Payment),
		}
	}
	return out
}

// CalculateForm parses the raw form and calculates it.
func (s *LoanService) CalculateForm(form domain.LoanForm) (domain.LoanResult, error) {
	input, err := ParseLoanForm(form)
	if err != nil {
		return domain.LoanResult{}, err
	}
	return s.CalculateLoan(input)
}
