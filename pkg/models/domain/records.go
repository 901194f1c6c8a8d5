package domain

import "time"

// InvoiceLine is one invoiced product line (account.move.line).
type InvoiceLine struct {
	Quantity      *float64
	PriceSubtotal *float64 // net of tax
	ProductID     *int64
	ProductName   string
}

// Product is a product.product row. Prices are nil when the ERP sent no value.
type Product struct {
	ID            int64
	StandardPrice *float64 // cost
	ListPrice     *float64 // public price
}

// SaleOrder is a confirmed sale.order.
type SaleOrder struct {
	Name          string
	UserID        *int64
	UserName      string
	AmountUntaxed *float64
}

// Invoice is a posted customer invoice (account.move).
type Invoice struct {
	Name          string
	AmountUntaxed *float64
	InvoiceDate   *time.Time
}
