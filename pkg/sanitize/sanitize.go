// Package sanitize transforms stored rich-text HTML for safe display and for
// safe reloading into the editor. Pure string work, no DOM, no I/O.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	linkRe       = regexp.MustCompile(`(?is)<a\b([^>]*)>`)
	targetAttrRe = regexp.MustCompile(`(?i)\s*target\s*=\s*"[^"]*"`)
	styleAttrRe  = regexp.MustCompile(`(?i)\s*style\s*=\s*"[^"]*"`)

	cursorSpanRe = regexp.MustCompile(`(?s)<span class="ql-cursor">.*?</span>`)

	uncheckedRe = regexp.MustCompile(`(?is)<li\b[^>]*data-list="unchecked"[^>]*>(.*?)</li>`)
	checkedRe   = regexp.MustCompile(`(?is)<li\b[^>]*data-list="checked"[^>]*>(.*?)</li>`)

	checklistListRe = regexp.MustCompile(`(?is)<ul\b[^>]*>\s*((?:<div style="display:flex[^>]*>.*?</div>\s*)+)</ul>`)

	formulaSpanRe = regexp.MustCompile(`(?is)<span\b[^>]*\bql-formula\b[^>]*>.*?</span>`)
	dataValueRe   = regexp.MustCompile(`(?is)\bdata-value\s*=\s*"(.*?)"`)
)

const (
	linkStyle     = `color:#4da3ff;text-decoration:underline;`
	rowStyle      = `display:flex;gap:4px;align-items:baseline;`
	checkedExtra  = `text-decoration:line-through;color:#888;`
	uncheckedMark = "☐" // ☐
	checkedMark   = "☑" // ☑
)

// RenderForDisplay prepares a note body for read-mode rendering: links open
// in a new tab with a fixed style, the editor's inert cursor marker is
// dropped, and data-list checklist items become plain stacked rows with a
// checkbox glyph. Idempotent; empty input yields an empty string.
func RenderForDisplay(html string) string {
	if html == "" {
		return ""
	}

	out := cursorSpanRe.ReplaceAllString(html, "")

	out = linkRe.ReplaceAllStringFunc(out, func(m string) string {
		attrs := linkRe.FindStringSubmatch(m)[1]
		attrs = targetAttrRe.ReplaceAllString(attrs, "")
		attrs = styleAttrRe.ReplaceAllString(attrs, "")
		attrs = strings.TrimSpace(attrs)
		if attrs != "" {
			attrs = " " + attrs
		}
		return `<a` + attrs + ` target="_blank" style="` + linkStyle + `">`
	})

	out = uncheckedRe.ReplaceAllString(out,
		`<div style="`+rowStyle+`">`+uncheckedMark+` $1</div>`)
	out = checkedRe.ReplaceAllString(out,
		`<div style="`+rowStyle+checkedExtra+`">`+checkedMark+` $1</div>`)

	// Converted rows must stack as plain divs, not render as a nested list.
	out = checklistListRe.ReplaceAllString(out, "$1")

	return out
}

// FlattenFormulas replaces every rendered formula widget with its raw source
// wrapped in $$ delimiters. The editor can fail to re-render a saved formula
// when reloading it for editing; flattening beforehand avoids the crash.
// Tolerates attributes in any order around data-value and newlines in the
// rendered content. Idempotent; empty input yields an empty string.
func FlattenFormulas(html string) string {
	if html == "" {
		return ""
	}

	return formulaSpanRe.ReplaceAllStringFunc(html, func(m string) string {
		openEnd := strings.Index(m, ">")
		if openEnd < 0 {
			return m
		}
		sub := dataValueRe.FindStringSubmatch(m[:openEnd+1])
		if sub == nil {
			return m
		}
		return "$$" + sub[1] + "$$"
	})
}
