// Package sanitize cleans user-supplied text before it is stored or rendered.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy  = bluemonday.UGCPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// Rich sanitizes user-generated content that may contain markup, such as
// pin descriptions and comments. Safe formatting tags are preserved while
// scripts, event handlers, and javascript: URLs are removed.
func Rich(s string) string {
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

// Plain strips all markup from single-line fields such as titles, names,
// and report reasons.
func Plain(s string) string {
	return strings.TrimSpace(plainPolicy.Sanitize(s))
}
