package service

import "time"

const (
	MaxLoanAmount   = 1_000_000_000_000.0 // 1 billón
	MaxInterestRate = 1000.0              // 1000% anual
	MaxTermMonths   = 600                 // 50 años
	MinTermMonths   = 1
	MaxFullNameLen  = 200 // máximo de caracteres del nombre

	// StartDateLayout matches the value of an HTML date input.
	StartDateLayout = "2006-01-02"

	DefaultSealTimeout = 10 * time.Second
)
