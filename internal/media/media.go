// Package media points document-relative asset references at the asset host.
package media

import (
	"regexp"
	"strings"
)

// Prefix is the reserved path every rewritable asset reference starts with.
const Prefix = "/media/"

var attrPattern = regexp.MustCompile(`([A-Za-z_:][-A-Za-z0-9_:.]*)(\s*=\s*)(?:"(/media/[^"]*)"|'(/media/[^']*)')`)

// Rewriter prefixes /media/ attribute values with a base URL.
type Rewriter struct {
	base string
}

// NewRewriter returns a Rewriter for base. An empty base disables rewriting.
func NewRewriter(base string) *Rewriter {
	return &Rewriter{base: strings.TrimRight(base, "/")}
}

// Base returns the normalized base URL.
func (r *Rewriter) Base() string { return r.base }

// Rewrite returns fragment with every attr="/media/..." (either quote style)
// replaced by attr="<base>/media/...". Everything else passes through as is.
func (r *Rewriter) Rewrite(fragment string) string {
	if r == nil || r.base == "" || !strings.Contains(fragment, Prefix) {
		return fragment
	}
	return attrPattern.ReplaceAllStringFunc(fragment, func(m string) string {
		sub := attrPattern.FindStringSubmatch(m)
		name, eq := sub[1], sub[2]
		if sub[3] != "" {
			return name + eq + `"` + r.base + sub[3] + `"`
		}
		return name + eq + `'` + r.base + sub[4] + `'`
	})
}
