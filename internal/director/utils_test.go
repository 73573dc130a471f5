package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateScriptPath(t *testing.T) {
	path := GenerateScriptPath("scripts")

	if filepath.Dir(path) != "scripts" {
		t.Errorf("Path should be in scripts: %s", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "script_") || !strings.HasSuffix(path, ".yaml") {
		t.Errorf("Unexpected script filename: %s", path)
	}

	t.Logf("Generated path: %s", path)
}

func TestFindLatestScript(t *testing.T) {
	testDir := t.TempDir()

	// Create test files with different timestamps
	files := []string{
		filepath.Join(testDir, "script_2026-02-12_10-00-00.yaml"),
		filepath.Join(testDir, "script_2026-02-13_01-00-00.yaml"),
		filepath.Join(testDir, "script_2026-02-11_15-30-00.yaml"),
	}

	for i, f := range files {
		if err := os.WriteFile(f, []byte("version: \"1.0\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		// Set different modification times
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(f, modTime, modTime); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(testDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	latest, err := FindLatestScript(testDir)
	if err != nil {
		t.Fatalf("FindLatestScript failed: %v", err)
	}

	// Should be the last file (most recent mod time)
	if latest != files[len(files)-1] {
		t.Errorf("Expected latest to be %s, got %s", files[len(files)-1], latest)
	}
}

func TestFindLatestScriptEmpty(t *testing.T) {
	if _, err := FindLatestScript(t.TempDir()); err == nil {
		t.Error("Expected error for a directory without scripts")
	}
	if _, err := FindLatestScript(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for a missing directory")
	}
}
