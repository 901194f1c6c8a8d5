package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/sales-stats/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-stats/pkg/services/stats"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ServiceProvider builds the report service once the root flags are parsed.
type ServiceProvider func(ctx context.Context) (stats.Service, error)

// ReporterProvider returns the reporter matching the --format flag.
type ReporterProvider func() (*export.Reporter, error)

type reportFunc func(ctx context.Context, svc stats.Service) (export.Report, error)

func productsReport(ctx context.Context, svc stats.Service) (export.Report, error) {
	rows, err := svc.WeeklyProducts(ctx)
	if err != nil {
		return export.Report{}, err
	}
	return export.NewProductsReport(rows), nil
}

func quotationsReport(ctx context.Context, svc stats.Service) (export.Report, error) {
	rows, err := svc.QuotationRanking(ctx)
	if err != nil {
		return export.Report{}, err
	}
	return export.NewQuotationsReport(rows), nil
}

func warehousesReport(ctx context.Context, svc stats.Service) (export.Report, error) {
	rows, err := svc.MonthlyWarehouseTotals(ctx)
	if err != nil {
		return export.Report{}, err
	}
	return export.NewWarehousesReport(rows), nil
}

type ReportCmd struct {
	services  ServiceProvider
	reporters ReporterProvider
	reports   []reportFunc
}

func newReportCmd(use, short string, services ServiceProvider, reporters ReporterProvider, reports ...reportFunc) *cobra.Command {
	rc := &ReportCmd{services: services, reporters: reporters, reports: reports}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}
}

func NewProductsCmd(services ServiceProvider, reporters ReporterProvider) *cobra.Command {
	return newReportCmd("products", "Weekly subtotal, utility and list price per product",
		services, reporters, productsReport)
}

func NewQuotationsCmd(services ServiceProvider, reporters ReporterProvider) *cobra.Command {
	return newReportCmd("quotations", "Top salespeople by untaxed amount of confirmed orders",
		services, reporters, quotationsReport)
}

func NewWarehousesCmd(services ServiceProvider, reporters ReporterProvider) *cobra.Command {
	return newReportCmd("warehouses", "Monthly untaxed invoice totals per warehouse",
		services, reporters, warehousesReport)
}

// NewAllCmd runs every report concurrently and prints them in a fixed order.
func NewAllCmd(services ServiceProvider, reporters ReporterProvider) *cobra.Command {
	return newReportCmd("all", "Run every report",
		services, reporters, productsReport, quotationsReport, warehousesReport)
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	reporter, err := rc.reporters()
	if err != nil {
		return err
	}

	svc, err := rc.services(ctx)
	if err != nil {
		return fmt.Errorf("failed to create report service: %w", err)
	}

	results := make([]export.Report, len(rc.reports))
	g, gctx := errgroup.WithContext(ctx)
	for i, report := range rc.reports {
		g.Go(func() error {
			r, err := report(gctx, svc)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	return reporter.Handle(results...)
}
