package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func parsedFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fastping.yaml")
	body := "protocol: tcp\ntarget: 10.0.0.1\nport: 22\ntimeout: 1s\ncount: 5\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(parsedFlags(t, "--config", path, "--port", "2222", "-f", "json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Protocol != "tcp" || cfg.Target != "10.0.0.1" || cfg.Timeout != time.Second || cfg.Count != 5 {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.Port != 2222 || cfg.Format != "json" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestLoadConfigFlagsOnly(t *testing.T) {
	cfg, err := loadConfig(parsedFlags(t, "-p", "icmp", "-t", "8.8.8.8", "--strict", "-c", "2"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Protocol != "icmp" || cfg.Target != "8.8.8.8" || !cfg.StrictICMP || cfg.Count != 2 {
		t.Fatalf("unexpected %+v", cfg)
	}
	if cfg.Interval != time.Second || cfg.Timeout != 2*time.Second || cfg.Port != 80 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}
