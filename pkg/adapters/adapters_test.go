package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/sales-stats/pkg/models/api"
	"github.com/de-tools/sales-stats/pkg/models/domain"
	"github.com/de-tools/sales-stats/pkg/models/store"
	"github.com/stretchr/testify/assert"
)

func TestMapRecordToInvoiceLine(t *testing.T) {
	line := MapRecordToInvoiceLine(store.Record{
		"quantity":       float64(2),
		"price_subtotal": 100.5,
		"product_id":     float64(10),
		"product_name":   "Desk",
	})
	assert.Equal(t, 2.0, *line.Quantity)
	assert.Equal(t, 100.5, *line.PriceSubtotal)
	assert.Equal(t, int64(10), *line.ProductID)
	assert.Equal(t, "Desk", line.ProductName)

	empty := MapRecordToInvoiceLine(store.Record{"quantity": false, "product_id": false})
	assert.Nil(t, empty.Quantity)
	assert.Nil(t, empty.ProductID)
	assert.Equal(t, "", empty.ProductName)
}

func TestMapRecordToProduct(t *testing.T) {
	p, ok := MapRecordToProduct(store.Record{"id": 4, "standard_price": 3.5, "lst_price": false})
	assert.True(t, ok)
	assert.Equal(t, int64(4), p.ID)
	assert.Equal(t, 3.5, *p.StandardPrice)
	assert.Nil(t, p.ListPrice)

	_, ok = MapRecordToProduct(store.Record{"standard_price": 3.5})
	assert.False(t, ok)
}

func TestMapRecordToInvoice(t *testing.T) {
	inv := MapRecordToInvoice(store.Record{"name": "INV/F1-AB/0001", "amount_untaxed": 10.0, "invoice_date": "2024-03-15"})
	assert.Equal(t, "INV/F1-AB/0001", inv.Name)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *inv.InvoiceDate)

	inv = MapRecordToInvoice(store.Record{"name": false, "invoice_date": false})
	assert.Equal(t, "", inv.Name)
	assert.Nil(t, inv.InvoiceDate)
}

func TestMapRecordToSaleOrder(t *testing.T) {
	order := MapRecordToSaleOrder(store.Record{"name": "S001", "user_id": 2, "user_name": "Ana", "amount_untaxed": 10.0})
	assert.Equal(t, domain.SaleOrder{Name: "S001", UserID: ptr(int64(2)), UserName: "Ana", AmountUntaxed: ptr(10.0)}, order)
}

func TestMapReportsDomainToApi(t *testing.T) {
	assert.Equal(t,
		api.QuotationRankingReport{{UserID: 2, UserName: "Ana", AmountUntaxed: 10}},
		MapSalespersonTotalsDomainToApi([]domain.SalespersonTotal{{UserID: 2, UserName: "Ana", AmountUntaxed: 10}}),
	)
	assert.Equal(t,
		api.MonthlyTotalsReport{{Warehouse: "Cabo San Lucas", Month: "Marzo", TotalAmount: 1}},
		MapWarehouseTotalsDomainToApi([]domain.WarehouseMonthTotal{{Warehouse: "Cabo San Lucas", MonthNumber: 3, Month: "Marzo", TotalAmount: 1}}),
	)
	assert.Equal(t, api.WeeklyProductsReport{}, MapProductSalesDomainToApi(nil))
}

func ptr[T any](v T) *T {
	return &v
}
