// Package wikilink formats and parses vault wikilinks and embeds.
//
// Grammar:
//
//	[[target]]
//	{{embed [[target]]}}
//
// Targets are page names; the page name of a calendar period is also its
// wikilink target, so links never need escaping beyond the brackets.
package wikilink

// Link formats a wikilink to the given page name.
func Link(target string) string {
	return "[[" + target + "]]"
}

// Embed formats an embed of the given page name.
func Embed(target string) string {
	return "{{embed " + Link(target) + "}}"
}
