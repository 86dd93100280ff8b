package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

func loadWithArgs(t *testing.T, args ...string) Config {
	t.Helper()
	var cfg Config
	app := cli.NewApp()
	app.Flags = RegisterFlags([]cli.Flag{})
	app.Action = func(c *cli.Context) error {
		cfg = LoadConfig(c)
		return nil
	}
	require.NoError(t, app.Run(append([]string{"yt-media-api"}, args...)))
	return cfg
}

func TestLoadConfigKeepsTempMaxAge(t *testing.T) {
	cfg := loadWithArgs(t, "--temp-max-age", "1h", "--request-timeout", "10m")
	assert.Equal(t, time.Hour, cfg.TempMaxAge)
	assert.Equal(t, 10*time.Minute, cfg.RequestTimeout)
}

func TestLoadConfigRaisesShortTempMaxAge(t *testing.T) {
	cfg := loadWithArgs(t, "--temp-max-age", "5m", "--request-timeout", "10m")
	assert.Equal(t, 20*time.Minute, cfg.TempMaxAge)
}

func TestWithSafeTempMaxAgeWithoutTimeout(t *testing.T) {
	cfg := Config{TempMaxAge: time.Minute}.withSafeTempMaxAge()
	assert.Equal(t, time.Minute, cfg.TempMaxAge)
}
