package commands

import (
	"testing"

	"github.com/weatherapp/weather-mcp/internal/appconfig"
)

// fakeFlags implements flagSet for exercising the override logic without
// building a real cobra command.
type fakeFlags struct {
	changed map[string]bool
	bools   map[string]bool
	strings map[string]string
	ints    map[string]int
}

func (f *fakeFlags) Changed(name string) bool { return f.changed[name] }

func (f *fakeFlags) GetBool(name string) (bool, error) { return f.bools[name], nil }

func (f *fakeFlags) GetString(name string) (string, error) { return f.strings[name], nil }

func (f *fakeFlags) GetInt(name string) (int, error) { return f.ints[name], nil }

func TestApplyFlagOverridesLayersChangedFlags(t *testing.T) {
	cfg := appconfig.Config{
		UserAgent:      "file-agent/2.0",
		TimeoutSeconds: 10,
		LogFile:        "logs/file.log",
	}
	flags := &fakeFlags{
		changed: map[string]bool{"userAgent": true, "timeout": true, "debug": true},
		bools:   map[string]bool{"debug": true},
		strings: map[string]string{"userAgent": "cli-agent/3.0"},
		ints:    map[string]int{"timeout": 5},
	}

	applyFlagOverrides(&cfg, flags)

	if cfg.UserAgent != "cli-agent/3.0" {
		t.Fatalf("expected userAgent override, got %q", cfg.UserAgent)
	}
	if cfg.TimeoutSeconds != 5 {
		t.Fatalf("expected timeout override, got %d", cfg.TimeoutSeconds)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug override")
	}
	if cfg.LogFile != "logs/file.log" {
		t.Fatalf("untouched flag should not change the config, got %q", cfg.LogFile)
	}
}

func TestApplyFlagOverridesLeavesConfigWhenNothingChanged(t *testing.T) {
	cfg := appconfig.Config{
		ForecastAPIBase:  "https://forecast.example/v1",
		GeocodingAPIBase: "https://geocode.example/v1",
		ServerBinary:     "bin/weather-mcp",
	}
	before := cfg

	applyFlagOverrides(&cfg, &fakeFlags{changed: map[string]bool{}})

	if cfg != before {
		t.Fatalf("config changed without any flags set: %+v", cfg)
	}
}
