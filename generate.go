package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"loan-report/domain"
)

type generateOptions struct {
	form domain.LoanForm
	out  string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a loan report PDF to disk",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.form.FullName, "name", "", "recipient full name")
	f.StringVar(&opts.form.Amount, "amount", "", "loan amount")
	f.StringVar(&opts.form.Term, "term", "", "term in months")
	f.StringVar(&opts.form.Rate, "rate", "", "annual interest rate in percent")
	f.StringVar(&opts.form.StartDate, "start", time.Now().Format("2006-01-02"), "issue date (YYYY-MM-DD)")
	f.StringVarP(&opts.out, "out", "o", "", "output file (default: the report file name of the locale)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("term")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer a.Close()

	rep, err := a.reports.Generate(cmd.Context(), opts.form)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = rep.Filename
	}
	if err := os.WriteFile(out, rep.Content, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d pages)\n", out, rep.Pages)
	return nil
}
