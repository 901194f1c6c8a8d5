package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/sales-stats/pkg/services/stats"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	ERP     ERPConfig     `mapstructure:"erp"`
	Log     LogConfig     `mapstructure:"log"`
	Reports stats.Windows `mapstructure:"reports"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	// AllowedOrigins overrides the discovered dashboard origin when set.
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	DashboardPort   int           `mapstructure:"dashboard_port" validate:"gt=0,lte=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ERPConfig struct {
	ProfilesPath string `mapstructure:"profiles_path"`
	Profile      string `mapstructure:"profile"`
	// Fixtures serves reports from a JSON file instead of the ERP.
	Fixtures string        `mapstructure:"fixtures"`
	Timeout  time.Duration `mapstructure:"timeout"`
	RetryMax int           `mapstructure:"retry_max" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.dashboard_port", 5173)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("erp.profiles_path", ".odoocfg")
	v.SetDefault("erp.profile", "default")
	v.SetDefault("erp.fixtures", "")
	v.SetDefault("erp.timeout", 30*time.Second)
	v.SetDefault("erp.retry_max", 2)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	setReportDefaults(v, stats.DefaultWindows())
}

func setReportDefaults(v *viper.Viper, w stats.Windows) {
	v.SetDefault("reports.fetch_timeout", w.FetchTimeout)

	v.SetDefault("reports.weekly_products.move_type", w.WeeklyProducts.MoveType)
	v.SetDefault("reports.weekly_products.account_ids", w.WeeklyProducts.AccountIDs)
	v.SetDefault("reports.weekly_products.from", w.WeeklyProducts.From)
	v.SetDefault("reports.weekly_products.to", w.WeeklyProducts.To)

	v.SetDefault("reports.quotations.state", w.Quotations.State)
	v.SetDefault("reports.quotations.from", w.Quotations.From)
	v.SetDefault("reports.quotations.to", w.Quotations.To)
	v.SetDefault("reports.quotations.limit", w.Quotations.Limit)

	v.SetDefault("reports.monthly_warehouse.state", w.MonthlyWarehouse.State)
	v.SetDefault("reports.monthly_warehouse.move_type", w.MonthlyWarehouse.MoveType)
	v.SetDefault("reports.monthly_warehouse.warehouses", w.MonthlyWarehouse.Warehouses)
}

// LoadConfig reads the application config from path, or only defaults and the
// environment when path is empty. Every key has a default, so any of them can be
// overridden by the upper-cased key with dots replaced by underscores, e.g.
// SERVER_PORT, ERP_PROFILE or REPORTS_QUOTATIONS_LIMIT.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Reports.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
