// Package document implements the page document model: a frontmatter
// property block plus opaque body lines.
//
// The representation is deliberately line-level. A parsed document that is
// never mutated serializes back to the original bytes, so untouched user
// content (including formatting quirks) survives every run. Properties are
// read through YAML, but writes edit the raw property lines in place rather
// than re-emitting the block.
package document

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformedFrontmatter reports a property block that opens correctly but
// cannot be parsed as a YAML mapping. Callers skip such files rather than
// risk rewriting content they do not understand.
var ErrMalformedFrontmatter = errors.New("malformed frontmatter")

// Document is a parsed page: an ordered property block and ordered body lines.
type Document struct {
	// lines holds the raw file content split on newlines, frontmatter
	// delimiters included. Serialize joins them back, which is what makes
	// the round trip byte-stable.
	lines []string

	// fmOpen and fmClose index the frontmatter delimiter lines, or -1 when
	// the document has no property block.
	fmOpen  int
	fmClose int

	props map[string]interface{}
}

// New returns an empty document: no property block, no body. Serializing it
// yields an empty string; the first property or region write creates content.
func New() *Document {
	return &Document{
		lines:   []string{""},
		fmOpen:  -1,
		fmClose: -1,
		props:   map[string]interface{}{},
	}
}

// Parse parses raw page content into a document.
func Parse(raw string) (*Document, error) {
	d := &Document{
		lines:   strings.Split(raw, "\n"),
		fmOpen:  -1,
		fmClose: -1,
		props:   map[string]interface{}{},
	}

	if len(d.lines) == 0 || strings.TrimSpace(d.lines[0]) != "---" {
		return d, nil
	}

	end := -1
	for i := 1; i < len(d.lines); i++ {
		if strings.TrimSpace(d.lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		// An opening delimiter that never closes is treated as body text,
		// matching how editors render it.
		return d, nil
	}

	block := strings.Join(d.lines[1:end], "\n")
	var props map[string]interface{}
	if err := yaml.Unmarshal([]byte(block), &props); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrontmatter, err)
	}
	if props == nil {
		// Empty or comment-only blocks still count as frontmatter because
		// they shift body line offsets.
		props = map[string]interface{}{}
	}

	d.fmOpen = 0
	d.fmClose = end
	d.props = props
	return d, nil
}

// Serialize renders the document back to page content.
func (d *Document) Serialize() string {
	return strings.Join(d.lines, "\n")
}

// Property returns the scalar value of a frontmatter key, formatted as a
// string. Structured values (mappings, sequences) report false.
func (d *Document) Property(key string) (string, bool) {
	v, ok := d.props[key]
	if !ok {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// SetProperty inserts or updates a frontmatter key. An existing key keeps its
// position in the block; a new key is appended at the end of the block; a
// document without a property block gets one created at the top.
//
// Managed values are written quoted (`key: "value"`), the form the vault's
// pages use for wikilink values.
func (d *Document) SetProperty(key, value string) {
	line := propertyLine(key, value)

	if d.fmOpen == -1 {
		// Create the block above the body.
		head := []string{"---", line, "---"}
		d.lines = append(head, d.lines...)
		d.fmOpen = 0
		d.fmClose = 2
		d.props[key] = value
		return
	}

	for i := d.fmOpen + 1; i < d.fmClose; i++ {
		if k, ok := propertyKey(d.lines[i]); ok && k == key {
			if d.lines[i] != line {
				d.lines[i] = line
			}
			d.props[key] = value
			return
		}
	}

	d.lines = append(d.lines[:d.fmClose], append([]string{line}, d.lines[d.fmClose:]...)...)
	d.fmClose++
	d.props[key] = value
}

// bodyStart returns the index of the first body line.
func (d *Document) bodyStart() int {
	if d.fmClose == -1 {
		return 0
	}
	return d.fmClose + 1
}

func propertyLine(key, value string) string {
	return fmt.Sprintf("%s: %q", key, value)
}

// propertyKey extracts the key of a top-level `key: value` property line.
// Indented lines and comments belong to a preceding key and are skipped.
func propertyKey(line string) (string, bool) {
	if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' {
		return "", false
	}
	key, _, found := strings.Cut(line, ":")
	if !found {
		return "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	return key, true
}
