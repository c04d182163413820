package episodes

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMappingLookup(t *testing.T) {
	mapping := DefaultMapping()

	folder, ok := mapping.Folder(1)
	if !ok {
		t.Fatal("Expected mapping entry for episode 1")
	}
	if folder != "ep1-bees" {
		t.Errorf("Expected folder 'ep1-bees', got: %s", folder)
	}

	// Feed numbering and folder numbering intentionally disagree
	folder, ok = mapping.Folder(11)
	if !ok {
		t.Fatal("Expected mapping entry for episode 11")
	}
	if folder != "ep14-blue-tech-econcrete" {
		t.Errorf("Expected folder 'ep14-blue-tech-econcrete', got: %s", folder)
	}

	if _, ok := mapping.Folder(99); ok {
		t.Error("Expected no mapping entry for episode 99")
	}
}

func TestLoadMappingWithoutFile(t *testing.T) {
	mapping, err := LoadMapping("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(mapping) != len(DefaultMapping()) {
		t.Errorf("Expected default mapping, got %d entries", len(mapping))
	}

	mapping, err = LoadMapping(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Expected missing file to fall back to defaults, got: %v", err)
	}
	if len(mapping) != len(DefaultMapping()) {
		t.Errorf("Expected default mapping for missing file, got %d entries", len(mapping))
	}
}

func TestLoadMappingOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yml")
	content := `episodes:
  17: "ep17-new-episode"
  1: "ep1-replacement"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write mapping file: %v", err)
	}

	mapping, err := LoadMapping(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if folder, _ := mapping.Folder(17); folder != "ep17-new-episode" {
		t.Errorf("Expected new entry 'ep17-new-episode', got: %s", folder)
	}
	if folder, _ := mapping.Folder(1); folder != "ep1-replacement" {
		t.Errorf("Expected overridden entry 'ep1-replacement', got: %s", folder)
	}
	if folder, _ := mapping.Folder(2); folder != "ep3-daikawood" {
		t.Errorf("Expected untouched default entry, got: %s", folder)
	}
}

func TestLoadMappingMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yml")
	if err := os.WriteFile(path, []byte("episodes: [not, a, map]"), 0o644); err != nil {
		t.Fatalf("Failed to write mapping file: %v", err)
	}

	if _, err := LoadMapping(path); err == nil {
		t.Error("Expected error for malformed mapping file, got nil")
	}
}
