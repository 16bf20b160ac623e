package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeRegistryFile writes a registry YAML file into a temp dir.
func writeRegistryFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "registry.yml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write registry file: %v", err)
	}
	return path
}

// TestLoadRegistryFile tests loading an external operator registry.
func TestLoadRegistryFile(t *testing.T) {
	t.Parallel()

	t.Run("loads operators and colors", func(t *testing.T) {
		t.Parallel()

		path := writeRegistryFile(t, `
operators:
  - mcc: 262
    mnc: 1
    name: Telekom
  - mcc: 262
    mnc: 2
    name: Vodafone
colors:
  Telekom: magenta
  Vodafone: red
`)

		registry, colors, err := LoadRegistryFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if registry.Len() != 2 {
			t.Errorf("got %d operators, want 2", registry.Len())
		}
		if name, ok := registry.Lookup(262, 1); !ok || name != "Telekom" {
			t.Errorf("Lookup(262, 1) = (%q, %v), want Telekom", name, ok)
		}
		if got := colors.ColorFor("Vodafone"); got != "red" {
			t.Errorf("ColorFor(Vodafone) = %q, want red", got)
		}
	})

	t.Run("missing file returns sentinel", func(t *testing.T) {
		t.Parallel()

		_, _, err := LoadRegistryFile(filepath.Join(t.TempDir(), "nope.yml"))
		if !errors.Is(err, ErrRegistryNotFound) {
			t.Errorf("got error %v, want ErrRegistryNotFound", err)
		}
	})

	t.Run("rejects entries without a name", func(t *testing.T) {
		t.Parallel()

		path := writeRegistryFile(t, `
operators:
  - mcc: 310
    mnc: 410
`)

		if _, _, err := LoadRegistryFile(path); err == nil {
			t.Error("expected error for entry without a name")
		}
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeRegistryFile(t, "operators: [not: closed")

		if _, _, err := LoadRegistryFile(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})

	t.Run("missing colors section yields empty map", func(t *testing.T) {
		t.Parallel()

		path := writeRegistryFile(t, `
operators:
  - mcc: 262
    mnc: 1
    name: Telekom
`)

		_, colors, err := LoadRegistryFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if colors == nil {
			t.Error("expected non-nil colors map")
		}
		if got := colors.ColorFor("Telekom"); got != DefaultMarkerColor {
			t.Errorf("got color %q, want default", got)
		}
	})
}
