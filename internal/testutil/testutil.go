// Package testutil provides test helpers for jsm tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDir creates a temporary directory for tests and returns a cleanup function.
func TempDir(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := os.MkdirTemp("", "jsm-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	return dir, func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Logf("warning: failed to remove temp dir %s: %v", dir, err)
		}
	}
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteFiles writes every name/content pair under dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
}

// CalendarFixture is the jquery calendar example: calendar.js depends on
// jquery.js and jquery-ui.js, and jquery-ui.js depends on ui.js.
func CalendarFixture() map[string]string {
	return map[string]string{
		"calendar.js":      "calendar();\n",
		"calendar.dep.js":  `["jquery.js", "jquery-ui.js"]`,
		"jquery.js":        "var jQuery = {};\n",
		"jquery-ui.js":     "jQuery.ui = {};",
		"jquery-ui.dep.js": `["ui.js"]`,
		"ui.js":            "var ui = 1;\n",
	}
}
