package adapters

import (
	"github.com/de-tools/sales-stats/pkg/models/api"
	"github.com/de-tools/sales-stats/pkg/models/domain"
)

func MapProductSalesDomainToApi(rows []domain.ProductSales) api.WeeklyProductsReport {
	res := make(api.WeeklyProductsReport, 0, len(rows))
	for _, r := range rows {
		res = append(res, api.ProductSales{
			ProductName: r.ProductName,
			Subtotal:    r.Subtotal,
			Utility:     r.Utility,
			ListPrice:   r.ListPrice,
		})
	}
	return res
}

func MapSalespersonTotalsDomainToApi(rows []domain.SalespersonTotal) api.QuotationRankingReport {
	res := make(api.QuotationRankingReport, 0, len(rows))
	for _, r := range rows {
		res = append(res, api.SalespersonTotal{
			UserID:        r.UserID,
			UserName:      r.UserName,
			AmountUntaxed: r.AmountUntaxed,
		})
	}
	return res
}

func MapWarehouseTotalsDomainToApi(rows []domain.WarehouseMonthTotal) api.MonthlyTotalsReport {
	res := make(api.MonthlyTotalsReport, 0, len(rows))
	for _, r := range rows {
		res = append(res, api.WarehouseMonthTotal{
			Warehouse:   r.Warehouse,
			Month:       r.Month,
			TotalAmount: r.TotalAmount,
		})
	}
	return res
}
