package stats

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Windows holds the filter constants of every report.
type Windows struct {
	WeeklyProducts   WeeklyProductsWindow   `mapstructure:"weekly_products"`
	Quotations       QuotationsWindow       `mapstructure:"quotations"`
	MonthlyWarehouse MonthlyWarehouseWindow `mapstructure:"monthly_warehouse"`
	// FetchTimeout bounds each dataset fetch; zero disables it.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type WeeklyProductsWindow struct {
	MoveType   string  `mapstructure:"move_type" validate:"required"`
	AccountIDs []int64 `mapstructure:"account_ids" validate:"required,min=1"`
	From       string  `mapstructure:"from" validate:"required,datetime=2006-01-02"`
	To         string  `mapstructure:"to" validate:"required,datetime=2006-01-02"`
}

type QuotationsWindow struct {
	State string `mapstructure:"state" validate:"required"`
	From  string `mapstructure:"from" validate:"required,datetime=2006-01-02"`
	To    string `mapstructure:"to" validate:"required,datetime=2006-01-02"`
	// Limit caps the ranking; zero keeps every salesperson.
	Limit int `mapstructure:"limit" validate:"gte=0"`
}

type MonthlyWarehouseWindow struct {
	State    string `mapstructure:"state" validate:"required"`
	MoveType string `mapstructure:"move_type" validate:"required"`
	// Warehouses maps the code embedded in invoice names to a warehouse name.
	Warehouses map[string]string `mapstructure:"warehouses" validate:"required,min=1"`
}

// DefaultWindows returns the windows the dashboard was built around.
func DefaultWindows() Windows {
	return Windows{
		WeeklyProducts: WeeklyProductsWindow{
			MoveType:   "out_invoice",
			AccountIDs: []int64{197, 85},
			From:       "2024-06-10",
			To:         "2024-06-15",
		},
		Quotations: QuotationsWindow{
			State: "sale",
			From:  "2024-05-01",
			To:    "2024-05-31",
			Limit: 5,
		},
		MonthlyWarehouse: MonthlyWarehouseWindow{
			State:    "posted",
			MoveType: "out_invoice",
			Warehouses: map[string]string{
				"1": "Cabo San Lucas",
				"2": "San José Del Cabo",
			},
		},
	}
}

func (w Windows) Validate() error {
	if err := validator.New().Struct(w); err != nil {
		return fmt.Errorf("invalid report windows: %w", err)
	}
	if w.WeeklyProducts.From > w.WeeklyProducts.To {
		return fmt.Errorf("invalid weekly products window: %s is after %s", w.WeeklyProducts.From, w.WeeklyProducts.To)
	}
	if w.Quotations.From > w.Quotations.To {
		return fmt.Errorf("invalid quotations window: %s is after %s", w.Quotations.From, w.Quotations.To)
	}
	return nil
}
