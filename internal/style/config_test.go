package style

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Width = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("zero width accepted")
	}

	cfg = Default()
	cfg.BraceFunctions = "sideways"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("bad brace style accepted")
	}

	cfg = Default()
	cfg.TrailingComma = "sometimes"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("bad trailing comma accepted")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := "width = 100\nfunction_brace_style = \"same_line\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 100 {
		t.Fatalf("Width = %d, want 100", cfg.Width)
	}
	if cfg.BraceFunctions != BraceSameLine {
		t.Fatalf("BraceFunctions = %q", cfg.BraceFunctions)
	}
	// untouched options keep defaults
	if cfg.IndentWidth != 4 || cfg.TrailingComma != TrailingMultiline {
		t.Fatalf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte("widht = 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("unknown key accepted")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "app")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, ConfigFileName)
	if err := os.WriteFile(cfgPath, []byte("width = 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: %v, %v", ok, err)
	}
	if found != cfgPath {
		t.Fatalf("Discover = %q, want %q", found, cfgPath)
	}
}

func TestFingerprintChangesWithOptions(t *testing.T) {
	a := Default()
	b := Default()
	b.Width = 120
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("fingerprint ignores width")
	}
	if a.Fingerprint() != Default().Fingerprint() {
		t.Fatalf("fingerprint not stable")
	}
}
