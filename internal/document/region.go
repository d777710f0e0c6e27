package document

import "strings"

// Managed regions are contiguous spans of the body reserved for generated
// content. Each region is delimited by HTML-comment marker lines, so page
// renderers hide them and re-runs can locate the exact span to replace:
//
//	<!-- saga:begin days -->
//	- Monday {{embed [[2025-12-08]]}}
//	...
//	<!-- saga:end days -->

// BeginMarker returns the opening delimiter line of a managed region.
func BeginMarker(id string) string {
	return "<!-- saga:begin " + id + " -->"
}

// EndMarker returns the closing delimiter line of a managed region.
func EndMarker(id string) string {
	return "<!-- saga:end " + id + " -->"
}

// Region returns the lines inside the managed region with the given id,
// and whether the region exists.
func (d *Document) Region(id string) ([]string, bool) {
	begin, end, ok := d.findRegion(id)
	if !ok {
		return nil, false
	}
	inner := make([]string, end-begin-1)
	copy(inner, d.lines[begin+1:end])
	return inner, true
}

// SetRegion replaces the content of the managed region with the given id.
// A region that does not exist yet is created at the end of the body,
// delimiters included; after that its position is stable across runs.
func (d *Document) SetRegion(id string, content []string) {
	begin, end, ok := d.findRegion(id)
	if !ok {
		d.appendRegion(id, content)
		return
	}

	replaced := make([]string, 0, begin+1+len(content)+len(d.lines)-end)
	replaced = append(replaced, d.lines[:begin+1]...)
	replaced = append(replaced, content...)
	replaced = append(replaced, d.lines[end:]...)
	d.lines = replaced
}

// findRegion locates the delimiter lines of a region within the body.
// A begin marker without a matching end marker is ignored: it is user text
// as far as this tool is concerned.
func (d *Document) findRegion(id string) (begin, end int, ok bool) {
	beginMarker := BeginMarker(id)
	endMarker := EndMarker(id)

	for i := d.bodyStart(); i < len(d.lines); i++ {
		if strings.TrimSpace(d.lines[i]) != beginMarker {
			continue
		}
		for j := i + 1; j < len(d.lines); j++ {
			if strings.TrimSpace(d.lines[j]) == endMarker {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// appendRegion creates a region at the end of the body, keeping the
// document's trailing newline (the empty final line) in place.
func (d *Document) appendRegion(id string, content []string) {
	block := make([]string, 0, len(content)+2)
	block = append(block, BeginMarker(id))
	block = append(block, content...)
	block = append(block, EndMarker(id))

	insert := len(d.lines)
	trailing := insert > d.bodyStart() && d.lines[insert-1] == ""
	if trailing {
		insert--
	}

	updated := make([]string, 0, len(d.lines)+len(block)+1)
	updated = append(updated, d.lines[:insert]...)
	updated = append(updated, block...)
	updated = append(updated, d.lines[insert:]...)
	if !trailing {
		updated = append(updated, "")
	}
	d.lines = updated
}
