package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/sales-stats/pkg/models/domain"
	"github.com/de-tools/sales-stats/pkg/models/store"
	"github.com/de-tools/sales-stats/pkg/store/dataset"
	"github.com/de-tools/sales-stats/pkg/store/filter"
)

const (
	entityInvoiceLine = "account.move.line"
	entityInvoice     = "account.move"
	entityProduct     = "product.product"
	entitySaleOrder   = "sale.order"
)

// Service builds the dashboard reports. Every call fetches fresh datasets,
// nothing is kept between calls.
type Service interface {
	WeeklyProducts(ctx context.Context) ([]domain.ProductSales, error)
	QuotationRanking(ctx context.Context) ([]domain.SalespersonTotal, error)
	MonthlyWarehouseTotals(ctx context.Context) ([]domain.WarehouseMonthTotal, error)
}

type service struct {
	source  dataset.Source
	windows Windows
}

func NewService(source dataset.Source, windows Windows) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("data source is nil")
	}
	if err := windows.Validate(); err != nil {
		return nil, err
	}
	return &service{source: source, windows: windows}, nil
}

func (s *service) WeeklyProducts(ctx context.Context) ([]domain.ProductSales, error) {
	return WeeklyProducts(ctx, s.fetcher(), s.windows.WeeklyProducts)
}

func (s *service) QuotationRanking(ctx context.Context) ([]domain.SalespersonTotal, error) {
	return QuotationRanking(ctx, s.fetcher(), s.windows.Quotations)
}

func (s *service) MonthlyWarehouseTotals(ctx context.Context) ([]domain.WarehouseMonthTotal, error) {
	return MonthlyWarehouseTotals(ctx, s.fetcher(), s.windows.MonthlyWarehouse)
}

func (s *service) fetcher() dataset.Source {
	if s.windows.FetchTimeout <= 0 {
		return s.source
	}
	return &timeoutSource{source: s.source, timeout: s.windows.FetchTimeout}
}

type timeoutSource struct {
	source  dataset.Source
	timeout time.Duration
}

func (t *timeoutSource) GetDataset(
	ctx context.Context,
	entity string,
	expr filter.Expr,
	fields []string,
) (*store.RecordSet, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.source.GetDataset(ctx, entity, expr, fields)
}
