package backend

import (
	"context"
	"fmt"

	"github.com/de-tools/sales-stats/pkg/config"
	"github.com/de-tools/sales-stats/pkg/store/dataset"
	"github.com/de-tools/sales-stats/pkg/store/memory"
	"github.com/de-tools/sales-stats/pkg/store/odoo"
	"github.com/rs/zerolog"
)

// Open returns the dataset source described by cfg: the fixture file when one is
// configured, otherwise the Odoo server of the selected profile.
func Open(ctx context.Context, cfg config.ERPConfig) (dataset.Source, error) {
	logger := zerolog.Ctx(ctx)

	if cfg.Fixtures != "" {
		src, err := memory.LoadFixtures(cfg.Fixtures)
		if err != nil {
			return nil, fmt.Errorf("failed to load fixtures: %w", err)
		}
		logger.Info().Str("fixtures", cfg.Fixtures).Msg("serving reports from fixtures")
		return src, nil
	}

	registry, err := odoo.NewRegistry(cfg.ProfilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile registry: %w", err)
	}

	profile, err := registry.GetProfile(ctx, cfg.Profile)
	if err != nil {
		profiles, _ := registry.GetProfiles(ctx)
		return nil, fmt.Errorf("failed to select profile %q (available: %v): %w", cfg.Profile, profiles, err)
	}

	logger.Info().
		Str("profile", profile.Name).
		Str("url", profile.URL).
		Str("db", profile.Database).
		Msg("connected ERP profile")

	return odoo.NewClient(*profile, odoo.Settings{
		Timeout:  cfg.Timeout,
		RetryMax: cfg.RetryMax,
		Logger:   logger,
	}), nil
}
