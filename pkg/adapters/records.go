package adapters

import (
	"github.com/de-tools/sales-stats/pkg/models/domain"
	"github.com/de-tools/sales-stats/pkg/models/store"
)

func MapRecordToInvoiceLine(r store.Record) domain.InvoiceLine {
	name, _ := r.String("product_name")
	return domain.InvoiceLine{
		Quantity:      optionalFloat(r, "quantity"),
		PriceSubtotal: optionalFloat(r, "price_subtotal"),
		ProductID:     optionalInt(r, "product_id"),
		ProductName:   name,
	}
}

// MapRecordToProduct returns false when the row carries no usable id.
func MapRecordToProduct(r store.Record) (domain.Product, bool) {
	id, ok := r.Int("id")
	if !ok {
		return domain.Product{}, false
	}
	return domain.Product{
		ID:            id,
		StandardPrice: optionalFloat(r, "standard_price"),
		ListPrice:     optionalFloat(r, "lst_price"),
	}, true
}

func MapRecordToSaleOrder(r store.Record) domain.SaleOrder {
	name, _ := r.String("name")
	userName, _ := r.String("user_name")
	return domain.SaleOrder{
		Name:          name,
		UserID:        optionalInt(r, "user_id"),
		UserName:      userName,
		AmountUntaxed: optionalFloat(r, "amount_untaxed"),
	}
}

func MapRecordToInvoice(r store.Record) domain.Invoice {
	name, _ := r.String("name")
	inv := domain.Invoice{
		Name:          name,
		AmountUntaxed: optionalFloat(r, "amount_untaxed"),
	}
	if date, ok := r.Date("invoice_date"); ok {
		inv.InvoiceDate = &date
	}
	return inv
}

func optionalFloat(r store.Record, field string) *float64 {
	v, ok := r.Float(field)
	if !ok {
		return nil
	}
	return &v
}

func optionalInt(r store.Record, field string) *int64 {
	v, ok := r.Int(field)
	if !ok {
		return nil
	}
	return &v
}
