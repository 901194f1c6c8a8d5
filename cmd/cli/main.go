package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/sales-stats/pkg/bootstrap"
	"github.com/de-tools/sales-stats/pkg/runtime/terminal"
	"github.com/de-tools/sales-stats/pkg/services/stats"
	"github.com/joho/godotenv"
)

func newService(ctx context.Context, configPath, profile string) (stats.Service, error) {
	cfg, err := bootstrap.LoadConfig(configPath, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := bootstrap.NewLogger(cfg.Log, os.Stderr)
	return bootstrap.NewService(logger.WithContext(ctx), cfg)
}

func main() {
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Factory: newService,
		Output:  os.Stdout,
	})

	if err := cli.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
