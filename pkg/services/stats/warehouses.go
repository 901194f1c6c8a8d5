package stats

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"

	"github.com/de-tools/sales-stats/pkg/adapters"
	"github.com/de-tools/sales-stats/pkg/models/domain"
	"github.com/de-tools/sales-stats/pkg/store/dataset"
	"github.com/de-tools/sales-stats/pkg/store/filter"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	invoiceFields = []string{"name", "amount_untaxed", "invoice_date"}

	// Invoice names embed the journal code, e.g. INV/F1-AB/0001.
	warehouseCodePattern = regexp.MustCompile(`F\d-\w{2}`)

	monthNames = map[int]string{
		1:  "Enero",
		2:  "Febrero",
		3:  "Marzo",
		4:  "Abril",
		5:  "Mayo",
		6:  "Junio",
		7:  "Julio",
		8:  "Agosto",
		9:  "Septiembre",
		10: "Octubre",
		11: "Noviembre",
		12: "Diciembre",
	}
)

func monthlyWarehouseFilter(w MonthlyWarehouseWindow) filter.Expr {
	return filter.And(
		filter.Eq("state", w.State),
		filter.Eq("move_type", w.MoveType),
	)
}

// WarehouseCode extracts the warehouse code from an invoice name: the text between
// match start+1 and match end-3 of the first `F\d-\w{2}` match, which is the digit
// after the F. It returns "" when nothing matches. The offsets assume the naming
// convention never changes; a different convention yields a wrong code, not an error.
func WarehouseCode(name string) string {
	loc := warehouseCodePattern.FindStringIndex(name)
	if loc == nil {
		return ""
	}
	return name[loc[0]+1 : loc[1]-3]
}

// MonthName returns the Spanish name of a calendar month.
func MonthName(month int) string {
	return monthNames[month]
}

type warehouseMonthKey struct {
	warehouse string
	month     int
}

type warehouseMonthAccumulator struct {
	monthName string
	amount    decimal.Decimal
}

// MonthlyWarehouseTotals sums posted customer invoices per (warehouse, month).
// Codes missing from w.Warehouses are reported as-is; invoices whose name carries no
// code, or that have no invoice date, are dropped. Rows are ordered by warehouse
// name, then month number.
func MonthlyWarehouseTotals(
	ctx context.Context,
	source dataset.Source,
	w MonthlyWarehouseWindow,
) ([]domain.WarehouseMonthTotal, error) {
	logger := zerolog.Ctx(ctx)

	invoiceSet, err := source.GetDataset(ctx, entityInvoice, monthlyWarehouseFilter(w), invoiceFields)
	if err != nil {
		return nil, fmt.Errorf("monthly warehouse totals: %w", err)
	}

	groups := make(map[warehouseMonthKey]*warehouseMonthAccumulator)
	dropped := 0
	for _, row := range invoiceSet.Rows {
		inv := adapters.MapRecordToInvoice(row)

		code := WarehouseCode(inv.Name)
		if code == "" || inv.InvoiceDate == nil {
			dropped++
			continue
		}
		warehouse, ok := w.Warehouses[code]
		if !ok {
			warehouse = code
		}

		month := int(inv.InvoiceDate.Month())
		key := warehouseMonthKey{warehouse: warehouse, month: month}
		acc, ok := groups[key]
		if !ok {
			acc = &warehouseMonthAccumulator{monthName: MonthName(month)}
			groups[key] = acc
		}
		if inv.AmountUntaxed != nil {
			acc.amount = acc.amount.Add(decimal.NewFromFloat(*inv.AmountUntaxed))
		}
	}

	result := make([]domain.WarehouseMonthTotal, 0, len(groups))
	for key, acc := range groups {
		result = append(result, domain.WarehouseMonthTotal{
			Warehouse:   key.warehouse,
			MonthNumber: key.month,
			Month:       acc.monthName,
			TotalAmount: acc.amount.InexactFloat64(),
		})
	}
	slices.SortFunc(result, func(a, b domain.WarehouseMonthTotal) int {
		if c := cmp.Compare(a.Warehouse, b.Warehouse); c != 0 {
			return c
		}
		return cmp.Compare(a.MonthNumber, b.MonthNumber)
	})

	logger.Debug().
		Int("invoices", invoiceSet.Len()).
		Int("dropped", dropped).
		Int("rows", len(result)).
		Msg("built monthly warehouse totals")

	return result, nil
}
