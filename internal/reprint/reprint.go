// Package reprint removes the plain-text echoes of table rows that document
// conversion leaves after a table, and rebuilds a table from label/value
// paragraphs when the original table was lost altogether.
package reprint

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/docsteps/internal/textnorm"
)

const defaultTableStyle = "border-collapse: collapse;"

// Cleaner post-processes rendered step fragments. It holds only compiled
// configuration and is safe for concurrent use.
type Cleaner struct {
	r *rules
}

// NewCleaner compiles v.
func NewCleaner(v Vocabulary) (*Cleaner, error) {
	r, err := v.compile()
	if err != nil {
		return nil, err
	}
	return &Cleaner{r: r}, nil
}

// Clean returns fragment with reprints removed, a table synthesized when the
// fragment has none but carries enough label/value pairs, and a border on every
// table lacking one. A fragment needing none of that is returned byte-for-byte.
func (c *Cleaner) Clean(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	body := doc.Find("body")

	changed := false
	if body.Find("table").Length() == 0 {
		changed = c.synthesize(body)
	}
	body.Find("table").Each(func(_ int, table *goquery.Selection) {
		if c.dropReprints(table) > 0 {
			changed = true
		}
	})
	body.Find("table").Each(func(_ int, table *goquery.Selection) {
		if _, ok := table.Attr("border"); ok {
			return
		}
		table.SetAttr("border", "1")
		if strings.TrimSpace(table.AttrOr("style", "")) == "" {
			table.SetAttr("style", defaultTableStyle)
		}
		changed = true
	})
	if !changed {
		return fragment
	}

	out, err := body.Html()
	if err != nil {
		return fragment
	}
	return out
}

// rowSignatures collects, per row, the normalized concatenation of its cells and
// each normalized cell on its own.
func rowSignatures(table *goquery.Selection) map[string]bool {
	sigs := make(map[string]bool)
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.ChildrenFiltered("th,td").Each(func(_ int, td *goquery.Selection) {
			if k := textnorm.Key(td.Text()); k != "" {
				cells = append(cells, k)
				sigs[k] = true
			}
		})
		if len(cells) > 0 {
			sigs[strings.Join(cells, " ")] = true
		}
	})
	return sigs
}

func matchesSignature(key string, sigs map[string]bool) bool {
	if key == "" {
		return false
	}
	if sigs[key] {
		return true
	}
	for sig := range sigs {
		if strings.Contains(sig, key) || strings.Contains(key, sig) {
			return true
		}
	}
	return false
}

// dropReprints walks the siblings after table, removing redundant ones until the
// first sibling that is not a paragraph/container/list, opens a new section, or
// is not redundant. It returns the number of removed siblings.
func (c *Cleaner) dropReprints(table *goquery.Selection) int {
	sigs := rowSignatures(table)
	removed := 0
	sib := table.Next()
	for sib.Length() > 0 && removed < c.r.maxRemovals {
		switch goquery.NodeName(sib) {
		case "p", "div", "ul", "ol":
		default:
			return removed
		}
		raw := textnorm.Collapse(sib.Text())
		if c.r.guard != nil && c.r.guard.MatchString(raw) {
			return removed
		}
		if !c.redundant(sib, strings.ToLower(raw), sigs) {
			return removed
		}
		next := sib.Next()
		sib.Remove()
		removed++
		sib = next
	}
	return removed
}

// redundant reports whether sib restates the table. Lists are judged item by
// item; anything else by its whole text.
func (c *Cleaner) redundant(sib *goquery.Selection, key string, sigs map[string]bool) bool {
	name := goquery.NodeName(sib)
	if name != "ul" && name != "ol" {
		return c.r.captions[key] || matchesSignature(key, sigs)
	}

	items := sib.ChildrenFiltered("li")
	if items.Length() == 0 {
		return false
	}
	hits := 0
	items.Each(func(_ int, li *goquery.Selection) {
		k := textnorm.Key(li.Text())
		if matchesSignature(k, sigs) || c.matchesItemPattern(k) {
			hits++
		}
	})
	return float64(hits) >= c.r.ratio*float64(items.Length())-1e-9
}

func (c *Cleaner) matchesItemPattern(key string) bool {
	if key == "" {
		return false
	}
	for _, re := range c.r.items {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

const leafSelector = "p,li,div,h1,h2,h3,h4,h5,h6,blockquote"

type labelValue struct {
	label, value string
}

// synthesize replaces body's content with a two-column table when enough rule
// labels are each followed by a value paragraph.
func (c *Cleaner) synthesize(body *goquery.Selection) bool {
	var texts []string
	body.Find(leafSelector).Each(func(_ int, s *goquery.Selection) {
		if s.Find(leafSelector).Length() > 0 {
			return
		}
		texts = append(texts, textnorm.Collapse(s.Text()))
	})

	seen := make(map[string]bool)
	var pairs []labelValue
	for i := 0; i < len(texts); i++ {
		key := strings.ToLower(texts[i])
		if !c.r.labels[key] || seen[key] {
			continue
		}
		j := i + 1
		for j < len(texts) && texts[j] == "" {
			j++
		}
		if j == len(texts) {
			break
		}
		if c.r.labels[strings.ToLower(texts[j])] {
			continue
		}
		seen[key] = true
		pairs = append(pairs, labelValue{label: texts[i], value: texts[j]})
		i = j
	}
	if len(pairs) < c.r.minRows {
		return false
	}
	body.SetHtml(c.tableHTML(pairs))
	return true
}

func (c *Cleaner) tableHTML(pairs []labelValue) string {
	var sb strings.Builder
	sb.WriteString(`<table border="1" style="` + defaultTableStyle + `"><thead><tr>`)
	for _, h := range c.r.headers {
		sb.WriteString("<th>" + html.EscapeString(h) + "</th>")
	}
	sb.WriteString("</tr></thead><tbody>")
	for _, p := range pairs {
		sb.WriteString("<tr><td>" + html.EscapeString(p.label) + "</td><td>" + html.EscapeString(p.value) + "</td></tr>")
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}
