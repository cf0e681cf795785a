package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "floorplan.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadFile_OverridesDefaults(t *testing.T) {
	path := writeFile(t, `
port = "8080"
export_dir = "/srv/exports"
raster_scale = 3.0
capture_supported = false
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != "8080" || cfg.ExportDir != "/srv/exports" || cfg.RasterScale != 3 || cfg.CaptureSupported {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.DBPath != Default().DBPath {
		t.Errorf("unset keys should keep defaults, got db_path %q", cfg.DBPath)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	if _, err := LoadFile(writeFile(t, `port = `)); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoad_EnvWins(t *testing.T) {
	path := writeFile(t, `
port = "8080"
raster_scale = 3.0
`)
	t.Setenv("FLOORPLAN_CONFIG", path)
	t.Setenv("PORT", "9090")
	t.Setenv("FLOORPLAN_RASTER_SCALE", "1.5")
	t.Setenv("FLOORPLAN_CAPTURE_SUPPORTED", "false")
	t.Setenv("READ_TIMEOUT", "not-a-number")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %s", cfg.Port)
	}
	if cfg.RasterScale != 1.5 {
		t.Errorf("RasterScale = %v", cfg.RasterScale)
	}
	if cfg.CaptureSupported {
		t.Error("CaptureSupported should be false")
	}
	if cfg.ReadTimeout != 10 {
		t.Errorf("bad env value should be ignored, got %d", cfg.ReadTimeout)
	}
}
