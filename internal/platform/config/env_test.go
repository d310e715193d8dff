package config

import "testing"

type testConfig struct {
	Addr    string `env:"CONFIG_TEST_ADDR" envDefault:":7000"`
	Verbose bool   `env:"CONFIG_TEST_VERBOSE"`
}

func TestParseEnv(t *testing.T) {
	t.Setenv("CONFIG_TEST_VERBOSE", "true")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Fatalf("Addr = %q, want default :7000", cfg.Addr)
	}
	if !cfg.Verbose {
		t.Fatal("Verbose = false, want env value true")
	}
}

func TestParseEnvOverride(t *testing.T) {
	t.Setenv("CONFIG_TEST_ADDR", ":9999")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("Addr = %q, want env override :9999", cfg.Addr)
	}
}

func TestParseEnvRejectsNilTarget(t *testing.T) {
	t.Parallel()

	if err := ParseEnv(nil); err == nil {
		t.Fatal("ParseEnv(nil) succeeded")
	}
}
