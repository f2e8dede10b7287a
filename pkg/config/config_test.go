package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sonikatlas/sonik/pkg/debug"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sonik.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.SampleRate != 44100 || cfg.BlockSize != 128 {
		t.Errorf("rate/block = %d/%d", cfg.SampleRate, cfg.BlockSize)
	}
	if cfg.MasterGain != 0.3 || cfg.AutoStop != 5*time.Second {
		t.Errorf("gain/auto-stop = %v/%v", cfg.MasterGain, cfg.AutoStop)
	}
}

func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, `
sample_rate: 48000
auto_stop: 2s
log_level: debug
catalog: styles.yaml
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("SampleRate = %d", cfg.SampleRate)
	}
	if cfg.AutoStop != 2*time.Second {
		t.Errorf("AutoStop = %v", cfg.AutoStop)
	}
	if cfg.Level() != debug.LogLevelDebug {
		t.Errorf("Level = %v", cfg.Level())
	}
	if cfg.Catalog != "styles.yaml" {
		t.Errorf("Catalog = %q", cfg.Catalog)
	}
	if cfg.BlockSize != 128 {
		t.Errorf("unset field lost its default: BlockSize = %d", cfg.BlockSize)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "sample_rate: 48000\nmaster_gain: 0.5\n")
	t.Setenv("SONIK_SAMPLE_RATE", "22050")
	t.Setenv("SONIK_SEED", "42")
	t.Setenv("SONIK_POLL_INTERVAL", "250ms")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want environment value", cfg.SampleRate)
	}
	if cfg.MasterGain != 0.5 {
		t.Errorf("MasterGain = %v, want file value", cfg.MasterGain)
	}
	if cfg.Seed != 42 || cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("Seed/PollInterval = %d/%v", cfg.Seed, cfg.PollInterval)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Load(writeFile(t, "sample_rate: [1, 2")); err == nil {
		t.Error("malformed YAML should fail")
	}
	t.Setenv("SONIK_BLOCK_SIZE", "lots")
	if _, err := Load(""); err == nil {
		t.Error("malformed environment value should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"sample rate", func(c *Config) { c.SampleRate = 0 }, "sample_rate"},
		{"block size", func(c *Config) { c.BlockSize = -1 }, "block_size"},
		{"gain zero", func(c *Config) { c.MasterGain = 0 }, "master_gain"},
		{"gain above unity", func(c *Config) { c.MasterGain = 1.5 }, "master_gain"},
		{"auto stop", func(c *Config) { c.AutoStop = 0 }, "auto_stop"},
		{"poll interval", func(c *Config) { c.PollInterval = -time.Second }, "poll_interval"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.SampleRate = 0
	cfg.MasterGain = 2
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "sample_rate") || !strings.Contains(err.Error(), "master_gain") {
		t.Errorf("every invalid field should be reported, got %v", err)
	}
}
