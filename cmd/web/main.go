package main

import (
	"fmt"
	"os"

	"github.com/de-tools/sales-stats/pkg/bootstrap"
	"github.com/de-tools/sales-stats/pkg/server"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	profile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the sales statistics dashboard",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the application config file (defaults and environment only when empty)")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "",
		"ERP profile to read from (overrides erp.profile)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := bootstrap.LoadConfig(cfgPath, profile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := bootstrap.NewLogger(cfg.Log, os.Stdout)
	ctx := logger.WithContext(cmd.Context())

	reports, err := bootstrap.NewService(ctx, cfg)
	if err != nil {
		return err
	}

	origins := bootstrap.AllowedOrigins(ctx, cfg.Server)
	logger.Info().Strs("origins", origins).Msg("allowing dashboard origins")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AllowedOrigins:  origins,
		Dependencies: server.Dependencies{
			Reports: reports,
			Logger:  logger,
		},
	})

	return api.Start()
}
