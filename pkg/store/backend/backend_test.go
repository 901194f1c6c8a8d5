package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/sales-stats/pkg/config"
	"github.com/de-tools/sales-stats/pkg/store/memory"
	"github.com/de-tools/sales-stats/pkg/store/odoo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpen(t *testing.T) {
	profiles := writeFile(t, "odoorc", `[test]
url = https://erp.example.com
db = company-test
username = reports@example.com
password = secret
`)
	fixtures := writeFile(t, "fixtures.json", `{"account.move": []}`)
	ctx := context.Background()

	t.Run("fixtures take precedence", func(t *testing.T) {
		src, err := Open(ctx, config.ERPConfig{Fixtures: fixtures, ProfilesPath: profiles, Profile: "test"})
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, src)
	})

	t.Run("odoo profile", func(t *testing.T) {
		src, err := Open(ctx, config.ERPConfig{ProfilesPath: profiles, Profile: "test"})
		require.NoError(t, err)
		assert.IsType(t, &odoo.Client{}, src)
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := Open(ctx, config.ERPConfig{ProfilesPath: profiles, Profile: "production"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "[test]")
	})

	t.Run("missing profiles file", func(t *testing.T) {
		_, err := Open(ctx, config.ERPConfig{ProfilesPath: filepath.Join(t.TempDir(), "none"), Profile: "test"})
		assert.Error(t, err)
	})

	t.Run("broken fixtures", func(t *testing.T) {
		_, err := Open(ctx, config.ERPConfig{Fixtures: writeFile(t, "bad.json", "{")})
		assert.Error(t, err)
	})
}
