package export

import (
	"strconv"

	"github.com/de-tools/sales-stats/pkg/adapters"
	"github.com/de-tools/sales-stats/pkg/models/domain"
)

const (
	ProductsReportName   = "products_week"
	QuotationsReportName = "quotation_amounts"
	WarehousesReportName = "monthly_total_amounts"
)

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func NewProductsReport(rows []domain.ProductSales) Report {
	report := Report{
		Name:    ProductsReportName,
		Title:   "Weekly product sales",
		Columns: []string{"Product", "Subtotal", "Utility", "List price"},
		Payload: adapters.MapProductSalesDomainToApi(rows),
	}
	for _, r := range rows {
		listPrice := "-"
		if r.ListPrice != nil {
			listPrice = amount(*r.ListPrice)
		}
		report.Rows = append(report.Rows, []string{r.ProductName, amount(r.Subtotal), amount(r.Utility), listPrice})
	}
	return report
}

func NewQuotationsReport(rows []domain.SalespersonTotal) Report {
	report := Report{
		Name:    QuotationsReportName,
		Title:   "Top salespeople by confirmed orders",
		Columns: []string{"User id", "Salesperson", "Untaxed amount"},
		Payload: adapters.MapSalespersonTotalsDomainToApi(rows),
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, []string{strconv.FormatInt(r.UserID, 10), r.UserName, amount(r.AmountUntaxed)})
	}
	return report
}

func NewWarehousesReport(rows []domain.WarehouseMonthTotal) Report {
	report := Report{
		Name:    WarehousesReportName,
		Title:   "Monthly invoiced amounts per warehouse",
		Columns: []string{"Warehouse", "Month", "Untaxed amount"},
		Payload: adapters.MapWarehouseTotalsDomainToApi(rows),
	}
	for _, r := range rows {
		report.Rows = append(report.Rows, []string{r.Warehouse, r.Month, amount(r.TotalAmount)})
	}
	return report
}
