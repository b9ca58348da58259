package appcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestLoad(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "app.yaml")
	is.NoErr(os.WriteFile(path, []byte(`
log_level: debug
hide_secrets_in_console: false
workers: 4
explorer:
  timeout_seconds: 30
  delay_seconds: 0.5
  order: [blockstream]
`), 0o600))

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.LogLevel, "debug")
	is.Equal(cfg.HideSecretsInConsole, false)
	is.Equal(cfg.Workers, 4)
	is.Equal(cfg.Explorer.TimeoutSeconds, 30)
	is.Equal(cfg.Explorer.DelaySeconds, 0.5)
	is.Equal(cfg.Explorer.Order, []string{"blockstream"})
}

func TestLoad_MissingFile(t *testing.T) {
	is := is.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	is.True(err != nil)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "app.yaml")
	is.NoErr(os.WriteFile(path, []byte("log_level: warn\n"), 0o600))

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.LogLevel, "warn")
	is.Equal(cfg.Explorer.TimeoutSeconds, 15)
	is.Equal(cfg.Explorer.Order, Default().Explorer.Order)
}
