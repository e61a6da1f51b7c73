package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/geneloc/pkg/model"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeySpecies, "human", "")
	fs.String(KeyOutput, "Localization", "")
	fs.String(KeyDB, "", "")
	fs.String(KeyFromCSV, "", "")
	fs.String(KeyMartHost, "", "")
	fs.Duration(KeyTimeout, 60*time.Second, "")
	fs.String(KeyLogLevel, "info", "")
	fs.Bool(KeyNoColor, false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, &d, cfg)
	assert.Equal(t, "human", cfg.Species)
	assert.Equal(t, "Localization", cfg.OutputFolder)
	assert.Equal(t, time.Minute, cfg.Timeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GENELOC_SPECIES", "mouse")
	t.Setenv("GENELOC_OUTPUT", "out")
	t.Setenv("GENELOC_MART_HOST", "http://mirror.local")
	t.Setenv("GENELOC_TIMEOUT", "5s")
	t.Setenv("GENELOC_NO_COLOR", "true")

	cfg, err := Load(testFlags())
	require.NoError(t, err)

	assert.Equal(t, "mouse", cfg.Species)
	assert.Equal(t, "out", cfg.OutputFolder)
	assert.Equal(t, "http://mirror.local", cfg.MartHost)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.NoColor)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("GENELOC_SPECIES", "mouse")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--species", "human", "--timeout", "2m"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "human", cfg.Species)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"species", func(c *Config) { c.Species = "zebrafish" }, "zebrafish"},
		{"output", func(c *Config) { c.OutputFolder = " " }, "output folder"},
		{"timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
		{"sources", func(c *Config) { c.DBPath, c.FromCSV = "genes.db", "genes.csv" }, "mutually exclusive"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}

func TestValidateUnsupportedSpeciesIsTyped(t *testing.T) {
	cfg := Default()
	cfg.Species = "yeast"
	assert.ErrorIs(t, cfg.Validate(), model.ErrUnsupportedSpecies)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GENELOC_OUTPUT=from-dotenv\n"), 0o644))
	t.Setenv("GENELOC_OUTPUT", "")
	require.NoError(t, os.Unsetenv("GENELOC_OUTPUT"))

	require.NoError(t, LoadDotEnv(path))
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.OutputFolder)

	assert.Error(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
