package domain

// ProductSales aggregates one product's invoice lines over the weekly window.
type ProductSales struct {
	ProductName string
	Subtotal    float64
	Utility     float64
	ListPrice   *float64
}

// SalespersonTotal is one row of the quotation ranking.
type SalespersonTotal struct {
	UserID        int64
	UserName      string
	AmountUntaxed float64
}

// WarehouseMonthTotal is the invoiced amount of a warehouse in a calendar month.
type WarehouseMonthTotal struct {
	Warehouse   string
	MonthNumber int
	Month       string
	TotalAmount float64
}
