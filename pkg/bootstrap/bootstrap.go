package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/sales-stats/pkg/config"
	"github.com/de-tools/sales-stats/pkg/netutil"
	"github.com/de-tools/sales-stats/pkg/services/stats"
	"github.com/de-tools/sales-stats/pkg/store/backend"
	"github.com/rs/zerolog"
)

func NewLogger(cfg config.LogConfig, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out}
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// LoadConfig loads the config at path and applies a non-empty profile override.
func LoadConfig(path, profile string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if profile != "" {
		cfg.ERP.Profile = profile
	}
	return cfg, nil
}

func NewService(ctx context.Context, cfg *config.Config) (stats.Service, error) {
	source, err := backend.Open(ctx, cfg.ERP)
	if err != nil {
		return nil, err
	}
	svc, err := stats.NewService(source, cfg.Reports)
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %w", err)
	}
	return svc, nil
}

// AllowedOrigins returns the configured origins, or the dashboard served from this
// host's 192.168.x.y address when none are configured.
func AllowedOrigins(ctx context.Context, cfg config.ServerConfig) []string {
	if len(cfg.AllowedOrigins) > 0 {
		return cfg.AllowedOrigins
	}

	logger := zerolog.Ctx(ctx)
	host, err := netutil.LocalLANAddress()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to discover local address")
	}
	if host == "" {
		host = "localhost"
		logger.Warn().Msg("no 192.168.x.y address found, allowing the dashboard on localhost")
	}
	return []string{netutil.DashboardOrigin(host, cfg.DashboardPort)}
}
