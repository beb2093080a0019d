package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8085", cfg.GetServerAddr())
	assert.Equal(t, "both", cfg.Printer.PrintType)
	assert.Equal(t, "shared", cfg.Printer.Method)
	assert.Equal(t, 9100, cfg.Printer.Direct.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.IsDebugEnabled())
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:  ServerConfig{Host: "0.0.0.0", Port: "8085"},
			Logging: LoggingConfig{Level: "info"},
			Printer: PrinterConfig{Method: "shared", PrintType: "both"},
			App:     AppConfig{Environment: "development"},
		}
	}

	assert.NoError(t, validate(base()))

	cfg := base()
	cfg.App.Environment = "prod"
	assert.Error(t, validate(cfg))

	cfg = base()
	cfg.Logging.Level = "verbose"
	assert.Error(t, validate(cfg))

	cfg = base()
	cfg.Printer.Method = "carrier-pigeon"
	assert.Error(t, validate(cfg))

	cfg = base()
	cfg.Printer.PrintType = "everything"
	assert.Error(t, validate(cfg))

	cfg = base()
	cfg.Server.Port = ""
	assert.Error(t, validate(cfg))
}
