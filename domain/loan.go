package domain

import "time"

// LoanForm holds the raw values exactly as they were typed into the form.
type LoanForm struct {
	FullName  string `json:"fullName"`
	Amount    string `json:"amount"`
	Term      string `json:"term"`
	Rate      string `json:"rate"`
	StartDate string `json:"startDate"`
}

// LoanInput is the parsed, validated form. It is passed by value into the
// calculator and the renderer and never mutated.
type LoanInput struct {
	FullName          string    `json:"fullName"`
	Amount            float64   `json:"amount"`
	TermMonths        int       `json:"term"`
	AnnualRatePercent float64   `json:"rate"`
	StartDate         time.Time `json:"startDate"`
}

// MonthlyRate returns the periodic (monthly) interest rate as a fraction.
func (in LoanInput) MonthlyRate() float64 {
	return in.AnnualRatePercent / 100 / 12
}

type PaymentPeriod struct {
	Date             time.Time `json:"date"`
	RemainingBalance float64   `json:"balance"`
	Interest         float64   `json:"interest"`
	Principal        float64   `json:"principal"`
	Payment          float64   `json:"payment"`
}

type AmortizationResult struct {
	PeriodicPayment float64         `json:"payment"`
	Schedule        []PaymentPeriod `json:"schedule"`
}

// TotalInterest sums the interest portion of every period.
func (r AmortizationResult) TotalInterest() float64 {
	var total float64
	for _, p := range r.Schedule {
		total += p.Interest
	}
	return total
}

// TotalPayment is the sum of all scheduled payments.
func (r AmortizationResult) TotalPayment() float64 {
	return r.PeriodicPayment * float64(len(r.Schedule))
}

// FinalBalance is the balance left after the last period. It is close to, but
// not always exactly, zero.
func (r AmortizationResult) FinalBalance() float64 {
	if len(r.Schedule) == 0 {
		return 0
	}
	return r.Schedule[len(r.Schedule)-1].RemainingBalance
}

// LoanResult is the rounded summary returned to API clients.
type LoanResult struct {
	MonthlyPayment float64         `json:"monthlyPayment"`
	TotalPayment   float64         `json:"totalPayment"`
	TotalInterest  float64         `json:"totalInterest"`
	Schedule       []PaymentPeriod `json:"schedule"`
}

// Report is a rendered loan document ready to be saved or streamed.
type Report struct {
	ID          string
	Filename    string
	ContentType string
	Content     []byte
	Pages       int
}
