package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"loan-report/domain"
	"loan-report/report"
	"loan-report/seal"
)

// Report generation outcomes, used as metric labels.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid_input"
	OutcomeSealTimeout = "seal_timeout"
	OutcomeSealError   = "seal_error"
	OutcomeRenderError = "render_error"
	OutcomeCanceled    = "canceled"
)

// DocumentRenderer turns a calculated loan into document bytes.
type DocumentRenderer interface {
	Render(doc report.Document) (*report.Rendered, error)
	Filename() string
}

// ReportRecorder receives one observation per Generate call.
type ReportRecorder interface {
	ObserveReport(outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveReport(string, time.Duration) {}

type ReportOptions struct {
	PrimarySeal   string
	SecondarySeal string
	SealTimeout   time.Duration
}

type ReportService struct {
	loans    *LoanService
	seals    seal.Source
	renderer DocumentRenderer
	opts     ReportOptions
	recorder ReportRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

// NewReportService wires the calculator, the seal source and the renderer.
// recorder may be nil.
func NewReportService(
	loans *LoanService,
	seals seal.Source,
	renderer DocumentRenderer,
	opts ReportOptions,
	recorder ReportRecorder,
	logger zerolog.Logger,
) *ReportService {
	if opts.SealTimeout == 0 {
		opts.SealTimeout = DefaultSealTimeout
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ReportService{
		loans:    loans,
		seals:    seals,
		renderer: renderer,
		opts:     opts,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate parses the form, calculates the schedule, waits for both seals and
// renders the document. Nothing is rendered unless both seals loaded.
func (s *ReportService) Generate(ctx context.Context, form domain.LoanForm) (*domain.Report, error) {
	start := s.now()
	id := uuid.NewString()
	logger := s.logger.With().Str("report_id", id).Logger()

	input, err := ParseLoanForm(form)
	if err != nil {
		s.observe(OutcomeInvalid, start)
		logger.Info().Err(err).Msg("rejected loan form")
		return nil, err
	}

	result, err := s.loans.Schedule(input)
	if err != nil {
		s.observe(OutcomeInvalid, start)
		return nil, err
	}

	pair, err := seal.LoadPair(ctx, s.seals, s.opts.PrimarySeal, s.opts.SecondarySeal, s.opts.SealTimeout)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.observe(OutcomeCanceled, start)
			logger.Info().Err(err).Msg("report canceled by caller")
			return nil, fmt.Errorf("load seals: %w", err)
		}
		outcome := OutcomeSealError
		if errors.Is(err, domain.ErrImageLoadTimeout) {
			outcome = OutcomeSealTimeout
		}
		s.observe(outcome, start)
		logger.Error().Err(err).Str("outcome", outcome).Msg("seal images unavailable")
		return nil, fmt.Errorf("load seals: %w", err)
	}

	rendered, err := s.renderer.Render(report.Document{
		ID:        id,
		Input:     input,
		Result:    result,
		Seals:     pair,
		CreatedAt: start,
	})
	if err != nil {
		s.observe(OutcomeRenderError, start)
		logger.Error().Err(err).Msg("report rendering failed")
		return nil, err
	}

	s.observe(OutcomeOK, start)
	logger.Info().
		Int("term", input.TermMonths).
		Int("pages", rendered.Pages).
		Int("bytes", len(rendered.Content)).
		Dur("elapsed", s.now().Sub(start)).
		Msg("report generated")

	return &domain.Report{
		ID:          id,
		Filename:    s.renderer.Filename(),
		ContentType: "application/pdf",
		Content:     rendered.Content,
		Pages:       rendered.Pages,
	}, nil
}

func (s *ReportService) observe(outcome string, start time.Time) {
	s.recorder.ObserveReport(outcome, s.now().Sub(start))
}
