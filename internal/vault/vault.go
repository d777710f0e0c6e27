// Package vault handles the on-disk layout of a markdown vault: where
// calendar pages live, how they are read and atomically written, and the
// vault-level configuration carried by the saga.md page.
package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/saga/internal/atomicfile"
	"github.com/aidanlsb/saga/internal/dates"
	"github.com/aidanlsb/saga/internal/document"
	"github.com/aidanlsb/saga/internal/events"
	"github.com/aidanlsb/saga/internal/features"
	"github.com/aidanlsb/saga/internal/period"
)

const (
	// ConfigPage is the vault-root page carrying fenced TOML configuration
	// blocks.
	ConfigPage = "saga.md"

	// DefaultJournalsFolder holds day pages unless the configuration or an
	// Obsidian daily-notes setting says otherwise.
	DefaultJournalsFolder = "journals"

	// DefaultEventsPage is consulted when the configuration lists no
	// event_files. Unlike configured entries, it may be absent.
	DefaultEventsPage = "events/recurring.md"
)

// Vault is an opened markdown vault.
type Vault struct {
	root           string
	journalsFolder string
	settings       *features.Settings
}

// Open opens the vault rooted at path, loading its configuration page and
// discovering the journals folder. Configuration problems are returned
// before anything is written.
func Open(path string) (*Vault, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path %s is not a directory", path)
	}

	settings, err := loadSettings(path)
	if err != nil {
		return nil, err
	}

	folder := settings.JournalsFolder
	if folder == "" {
		folder = obsidianJournalsFolder(path)
	}
	if folder == "" {
		folder = DefaultJournalsFolder
	}

	return &Vault{
		root:           path,
		journalsFolder: strings.Trim(folder, "/"),
		settings:       settings,
	}, nil
}

// Root returns the vault's root directory.
func (v *Vault) Root() string { return v.root }

// JournalsFolder returns the vault-relative folder holding day pages.
func (v *Vault) JournalsFolder() string { return v.journalsFolder }

// Settings returns the merged vault configuration block.
func (v *Vault) Settings() *features.Settings { return v.settings }

// PagePath returns the absolute file path of a calendar page. Day pages live
// under the journals folder; week, month and year pages live under the vault
// root, with the slashes in their names becoming directories.
func (v *Vault) PagePath(p period.Period) string {
	name := filepath.FromSlash(p.Name()) + ".md"
	if _, ok := p.(period.Day); ok {
		return filepath.Join(v.root, filepath.FromSlash(v.journalsFolder), name)
	}
	return filepath.Join(v.root, name)
}

// RelativePagePath returns the page path relative to the vault root, for
// reporting.
func (v *Vault) RelativePagePath(p period.Period) string {
	rel, err := filepath.Rel(v.root, v.PagePath(p))
	if err != nil {
		return v.PagePath(p)
	}
	return filepath.ToSlash(rel)
}

// LoadPage reads and parses a calendar page. A missing file yields a fresh
// empty document; malformed frontmatter surfaces as a wrapped
// document.ErrMalformedFrontmatter so callers can skip the file.
func (v *Vault) LoadPage(p period.Period) (*document.Document, error) {
	path := v.PagePath(p)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return document.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", v.RelativePagePath(p), err)
	}
	doc, err := document.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", v.RelativePagePath(p), err)
	}
	return doc, nil
}

// WritePage writes a calendar page atomically, creating parent directories
// as needed.
func (v *Vault) WritePage(p period.Period, doc *document.Document) error {
	path := v.PagePath(p)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", v.RelativePagePath(p), err)
	}
	if err := atomicfile.WriteFile(path, []byte(doc.Serialize()), 0); err != nil {
		return fmt.Errorf("writing %s: %w", v.RelativePagePath(p), err)
	}
	return nil
}

// LoadEvents parses every event page the configuration names. The anchor
// must not be after any date the events will be matched against. A missing
// page is an error when explicitly configured; the built-in default page is
// optional.
func (v *Vault) LoadEvents(anchor dates.Date) (events.List, error) {
	files := v.settings.EventFiles
	optional := false
	if len(files) == 0 {
		files = []string{DefaultEventsPage}
		optional = true
	}

	var list events.List
	for _, rel := range files {
		rel = strings.Trim(filepath.ToSlash(rel), "/")
		if !strings.HasSuffix(rel, ".md") {
			rel += ".md"
		}

		raw, err := os.ReadFile(filepath.Join(v.root, filepath.FromSlash(rel)))
		if errors.Is(err, fs.ErrNotExist) {
			if optional {
				continue
			}
			return nil, fmt.Errorf("events page %s not found", rel)
		}
		if err != nil {
			return nil, fmt.Errorf("reading events page %s: %w", rel, err)
		}

		for i, block := range tomlBlocks(raw) {
			e, err := events.Parse(block, anchor)
			if err != nil {
				return nil, fmt.Errorf("%s: event block %d: %w", rel, i+1, err)
			}
			list = append(list, e)
		}
	}
	return list, nil
}

// loadSettings reads the configuration page and folds its TOML blocks
// together, earlier blocks winning.
func loadSettings(root string) (*features.Settings, error) {
	raw, err := os.ReadFile(filepath.Join(root, ConfigPage))
	if errors.Is(err, fs.ErrNotExist) {
		return &features.Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ConfigPage, err)
	}

	merged := &features.Settings{}
	for i, block := range tomlBlocks(raw) {
		var s features.Settings
		if err := toml.Unmarshal([]byte(block), &s); err != nil {
			return nil, fmt.Errorf("%s: configuration block %d: %w", ConfigPage, i+1, err)
		}
		merged.Merge(s)
	}
	return merged, nil
}

// obsidianJournalsFolder reads the daily-notes folder Obsidian records in
// .obsidian/daily-notes.json, if present.
func obsidianJournalsFolder(root string) string {
	raw, err := os.ReadFile(filepath.Join(root, ".obsidian", "daily-notes.json"))
	if err != nil {
		return ""
	}
	var s struct {
		Folder string `json:"folder"`
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.Trim(s.Folder, "/")
}
