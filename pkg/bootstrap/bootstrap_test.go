package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/sales-stats/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}

func TestLoadConfig_ProfileOverride(t *testing.T) {
	cfg, err := LoadConfig("", "test")
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.ERP.Profile)

	cfg, err = LoadConfig("", "")
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.ERP.Profile)
}

func TestNewService_FromFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	content := `{
  "sale.order": [
    {"id": 1, "name": "S1", "state": "sale", "create_date": "2024-05-02 09:00:00", "user_id": [7, "Ana"], "amount_untaxed": 120.0}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig("", "")
	require.NoError(t, err)
	cfg.ERP.Fixtures = path

	svc, err := NewService(context.Background(), cfg)
	require.NoError(t, err)

	ranking, err := svc.QuotationRanking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, int64(7), ranking[0].UserID)
	assert.Equal(t, 120.0, ranking[0].AmountUntaxed)
}

func TestAllowedOrigins(t *testing.T) {
	ctx := context.Background()

	configured := AllowedOrigins(ctx, config.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}, DashboardPort: 5173})
	assert.Equal(t, []string{"http://localhost:3000"}, configured)

	discovered := AllowedOrigins(ctx, config.ServerConfig{DashboardPort: 5173})
	require.Len(t, discovered, 1)
	assert.True(t, strings.HasPrefix(discovered[0], "http://"))
	assert.True(t, strings.HasSuffix(discovered[0], ":5173"))
}
