package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"loan-report/config"
	"loan-report/metrics"
	"loan-report/report"
	"loan-report/repository"
	"loan-report/seal"
	"loan-report/service"
)

// app holds the wired services shared by the serve and generate commands.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	metrics *metrics.Metrics
	labels  report.Labels
	loans   *service.LoanService
	reports *service.ReportService
	closers []func() error
}

func newApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	layout, err := loadLayout(cfg.Report.Layout)
	if err != nil {
		return nil, err
	}
	a.labels, err = layout.Labels(cfg.Report.Locale)
	if err != nil {
		return nil, err
	}

	fonts, err := report.LoadFonts(cfg.Fonts.Regular, cfg.Fonts.Bold)
	if err != nil {
		return nil, err
	}
	renderer, err := report.NewRenderer(layout, cfg.Report.Locale, fonts)
	if err != nil {
		return nil, err
	}

	source, err := a.sealSource()
	if err != nil {
		return nil, err
	}

	a.loans = service.NewLoanService(logger)
	a.reports = service.NewReportService(
		a.loans,
		source,
		renderer,
		service.ReportOptions{
			PrimarySeal:   cfg.Assets.PrimarySeal,
			SecondarySeal: cfg.Assets.SecondarySeal,
			SealTimeout:   cfg.Assets.Timeout,
		},
		a.metrics,
		logger,
	)
	return a, nil
}

func loadLayout(path string) (*report.Layout, error) {
	if path == "" {
		return report.DefaultLayout()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %q: %w", path, err)
	}
	return report.ParseLayout(data)
}

func (a *app) sealSource() (seal.Source, error) {
	var source seal.Source
	switch a.cfg.Assets.Source {
	case "http":
		source = seal.NewHTTPSource(a.cfg.Assets.BaseURL, nil)
	default:
		source = seal.NewFileSource(a.cfg.Assets.Dir)
	}

	c := a.cfg.Cache
	switch c.Driver {
	case "redis":
		rc := repository.NewRedisCache(c.RedisAddr, c.RedisPassword, c.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			a.logger.Warn().Err(err).Str("addr", c.RedisAddr).Msg("redis unreachable, seal cache will miss")
		}
		a.closers = append(a.closers, rc.Close)
		return seal.NewCachedSource(source, rc, c.TTL), nil
	case "memory":
		return seal.NewCachedSource(source, repository.NewMemoryCache(c.TTL, 2*c.TTL), c.TTL), nil
	default:
		return source, nil
	}
}

func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn().Err(err).Msg("close resource")
		}
	}
}
