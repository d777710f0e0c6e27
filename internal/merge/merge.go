// Package merge reconciles a page document with its desired managed state.
// It only ever touches managed property keys and the managed region; hand
// written frontmatter and body text are preserved byte for byte.
package merge

import (
	"github.com/aidanlsb/saga/internal/document"
	"github.com/aidanlsb/saga/internal/generate"
)

// Apply folds the desired state into the document and reports whether the
// document's serialized form changed. Applying the same state twice never
// reports a change the second time.
func Apply(doc *document.Document, desired generate.DesiredState) bool {
	before := doc.Serialize()

	for _, p := range desired.Properties {
		doc.SetProperty(p.Key, p.Value)
	}
	if r := desired.Region; r != nil {
		doc.SetRegion(r.ID, r.Lines)
	}

	return doc.Serialize() != before
}
