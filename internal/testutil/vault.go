// Package testutil provides reusable test fixtures for vault integration
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestVault is a temporary vault builder. Configure it with the With*
// methods, then call Build to create the directory tree.
type TestVault struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewTestVault creates a new test vault builder.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file to the vault. The path is relative to the vault root
// and uses forward slashes.
func (v *TestVault) WithFile(path, content string) *TestVault {
	v.files[path] = content
	return v
}

// WithConfig sets the vault's saga.md page to a single fenced TOML block
// holding the given configuration.
func (v *TestVault) WithConfig(tomlBody string) *TestVault {
	v.files["saga.md"] = "```toml\n" + strings.TrimLeft(tomlBody, "\n") + "```\n"
	return v
}

// WithEventsPage adds an events page built from the given TOML blocks.
func (v *TestVault) WithEventsPage(path string, blocks ...string) *TestVault {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString("```toml\n")
		b.WriteString(strings.TrimLeft(block, "\n"))
		b.WriteString("```\n\n")
	}
	v.files[path] = b.String()
	return v
}

// Build creates the vault directory and all configured files.
func (v *TestVault) Build() *TestVault {
	v.t.Helper()
	v.Path = v.t.TempDir()
	for path, content := range v.files {
		v.writeFile(path, content)
	}
	return v
}

func (v *TestVault) writeFile(relPath, content string) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		v.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		v.t.Fatalf("failed to write file %s: %v", relPath, err)
	}
}

// ReadFile reads a vault file and returns its content.
func (v *TestVault) ReadFile(relPath string) string {
	v.t.Helper()
	content, err := os.ReadFile(filepath.Join(v.Path, filepath.FromSlash(relPath)))
	if err != nil {
		v.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists reports whether a vault file exists.
func (v *TestVault) FileExists(relPath string) bool {
	v.t.Helper()
	_, err := os.Stat(filepath.Join(v.Path, filepath.FromSlash(relPath)))
	return err == nil
}

// AssertFileExists fails the test when the vault file is missing.
func (v *TestVault) AssertFileExists(relPath string) {
	v.t.Helper()
	if !v.FileExists(relPath) {
		v.t.Errorf("expected %s to exist", relPath)
	}
}

// AssertFileNotExists fails the test when the vault file is present.
func (v *TestVault) AssertFileNotExists(relPath string) {
	v.t.Helper()
	if v.FileExists(relPath) {
		v.t.Errorf("expected %s not to exist", relPath)
	}
}

// AssertFileContains fails the test unless the vault file contains every
// given fragment.
func (v *TestVault) AssertFileContains(relPath string, fragments ...string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	for _, fragment := range fragments {
		if !strings.Contains(content, fragment) {
			v.t.Errorf("%s missing %q:\n%s", relPath, fragment, content)
		}
	}
}

// AssertFileNotContains fails the test if the vault file contains any of
// the given fragments.
func (v *TestVault) AssertFileNotContains(relPath string, fragments ...string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	for _, fragment := range fragments {
		if strings.Contains(content, fragment) {
			v.t.Errorf("%s unexpectedly contains %q", relPath, fragment)
		}
	}
}
