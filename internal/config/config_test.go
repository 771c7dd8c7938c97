package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 5000, cfg.Server.Port)
	require.Equal(t, "medicoes.db", cfg.DB.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "heuristic", cfg.Extract.SheetPolicy)
	require.Equal(t, "1900", cfg.Extract.DateEpoch)
	require.NotEmpty(t, cfg.CORS.Origins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FMC_SERVER_HOST", "127.0.0.1")
	t.Setenv("FMC_SERVER_PORT", "8090")
	t.Setenv("FMC_DB_PATH", "/tmp/teste.db")
	t.Setenv("FMC_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 8090, cfg.Server.Port)
	require.Equal(t, "/tmp/teste.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("FMC_SERVER_PORT", "não numérica")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
extract:
  sheet_policy: exact
  sheet_name: Folha de Medição
  date_epoch: "1904"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("FMC_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "exact", cfg.Extract.SheetPolicy)
	require.Equal(t, "Folha de Medição", cfg.Extract.SheetName)
	require.Equal(t, "1904", cfg.Extract.DateEpoch)
	// campos não presentes no arquivo mantêm os defaults
	require.Equal(t, "medicoes.db", cfg.DB.Path)
}
