package reprint

import (
	"errors"
	"strings"
	"testing"
)

func newCleaner(t *testing.T) *Cleaner {
	t.Helper()
	c, err := NewCleaner(DefaultVocabulary())
	if err != nil {
		t.Fatalf("new cleaner: %v", err)
	}
	return c
}

const namingTable = `<table border="1"><tbody>` +
	`<tr><td>Naming Consistency</td><td>Use prefix ABC</td></tr>` +
	`<tr><td>Budget Allocation</td><td>Split evenly</td></tr>` +
	`</tbody></table>`

func TestClean_RemovesReprintAndStopsAtUnrelated(t *testing.T) {
	in := namingTable + `<p>Use prefix ABC</p><p>See appendix for details.</p><p>Split evenly</p>`
	out := newCleaner(t).Clean(in)

	if strings.Contains(out, "<p>Use prefix ABC</p>") {
		t.Errorf("expected reprinted paragraph to be removed: %s", out)
	}
	if !strings.Contains(out, "<p>See appendix for details.</p>") {
		t.Errorf("expected unrelated paragraph to be kept: %s", out)
	}
	if !strings.Contains(out, "<p>Split evenly</p>") {
		t.Errorf("expected removal to halt at the first kept sibling: %s", out)
	}
	if !strings.Contains(out, "<td>Use prefix ABC</td>") {
		t.Errorf("expected table content untouched: %s", out)
	}
}

func TestClean_RowConcatenationAndContainment(t *testing.T) {
	in := namingTable +
		`<p>Naming Consistency Use prefix ABC</p>` + // whole row
		`<div>Budget Allocation: Split evenly across ad groups</div>` + // contains a cell
		`<p>prefix</p>` + // substring of a cell
		`<p>Keep me</p>`
	out := newCleaner(t).Clean(in)

	for _, gone := range []string{"Naming Consistency Use prefix ABC</p>", "across ad groups", "<p>prefix</p>"} {
		if strings.Contains(out, gone) {
			t.Errorf("expected %q to be removed: %s", gone, out)
		}
	}
	if !strings.Contains(out, "<p>Keep me</p>") {
		t.Errorf("expected trailing paragraph kept: %s", out)
	}
}

func TestClean_SectionGuardStopsWalk(t *testing.T) {
	in := namingTable + `<p>Objective: Use prefix ABC everywhere</p><p>Use prefix ABC</p>`
	out := newCleaner(t).Clean(in)
	if !strings.Contains(out, "Objective: Use prefix ABC everywhere") {
		t.Errorf("expected guarded paragraph kept: %s", out)
	}
	if !strings.Contains(out, "<p>Use prefix ABC</p>") {
		t.Errorf("expected paragraph after guard kept: %s", out)
	}
}

func TestClean_PhaseGuard(t *testing.T) {
	in := namingTable + `<div>Phase 2 Use prefix ABC</div>`
	out := newCleaner(t).Clean(in)
	if !strings.Contains(out, "Phase 2 Use prefix ABC") {
		t.Errorf("expected phase paragraph kept: %s", out)
	}
}

func TestClean_ListMostlyMatchingIsRemoved(t *testing.T) {
	in := namingTable + `<ul><li>Use prefix ABC</li><li>Split evenly</li><li>PN-77X launch</li><li>something else</li></ul><p>tail</p>`
	out := newCleaner(t).Clean(in)
	if strings.Contains(out, "<ul>") {
		t.Errorf("expected list with 3/4 matching items removed: %s", out)
	}
	if !strings.Contains(out, "<p>tail</p>") {
		t.Errorf("expected tail kept: %s", out)
	}
}

func TestClean_ListMostlyNewIsKept(t *testing.T) {
	in := namingTable + `<ol><li>Use prefix ABC</li><li>fresh one</li><li>fresh two</li></ol>`
	out := newCleaner(t).Clean(in)
	if !strings.Contains(out, "<ol>") {
		t.Errorf("expected list with 1/3 matching items kept: %s", out)
	}
}

func TestClean_CaptionLabelsAreRemoved(t *testing.T) {
	in := namingTable + `<p>Headline Ads</p><p>campaign type</p><p>Real content here</p>`
	out := newCleaner(t).Clean(in)
	if strings.Contains(out, "Headline Ads") || strings.Contains(out, "campaign type") {
		t.Errorf("expected stray captions removed: %s", out)
	}
	if !strings.Contains(out, "Real content here") {
		t.Errorf("expected content kept: %s", out)
	}
}

func TestClean_NonParagraphSiblingStopsWalk(t *testing.T) {
	in := namingTable + `<h3>Use prefix ABC</h3><p>Use prefix ABC</p>`
	out := newCleaner(t).Clean(in)
	if strings.Count(out, "Use prefix ABC") != 3 {
		t.Errorf("expected heading and following paragraph kept: %s", out)
	}
}

func TestClean_RemovalCap(t *testing.T) {
	in := namingTable + strings.Repeat(`<p>Use prefix ABC</p>`, 40)
	out := newCleaner(t).Clean(in)
	if got := strings.Count(out, "<p>Use prefix ABC</p>"); got != 10 {
		t.Errorf("expected 10 paragraphs left after the 30-removal cap, got %d", got)
	}
}

func TestClean_AddsBorderToBareTables(t *testing.T) {
	out := newCleaner(t).Clean(`<table><tbody><tr><td>x</td></tr></tbody></table>`)
	if !strings.Contains(out, `border="1"`) || !strings.Contains(out, `style="border-collapse: collapse;"`) {
		t.Errorf("expected default border style: %s", out)
	}
}

func TestClean_KeepsExistingStyle(t *testing.T) {
	out := newCleaner(t).Clean(`<table style="width:100%"><tbody><tr><td>x</td></tr></tbody></table>`)
	if !strings.Contains(out, `style="width:100%"`) || !strings.Contains(out, `border="1"`) {
		t.Errorf("expected border added and style preserved: %s", out)
	}
}

func TestClean_UnchangedFragmentsPassThrough(t *testing.T) {
	inputs := []string{
		`<p>No tables   here</p><ul><li>a</li></ul>`,
		namingTable + `<p>Unrelated</p>`,
		"",
	}
	c := newCleaner(t)
	for _, in := range inputs {
		if out := c.Clean(in); out != in {
			t.Errorf("expected byte-for-byte pass through\nwant: %q\ngot:  %q", in, out)
		}
	}
}

func TestClean_SynthesizesTableFromLabelPairs(t *testing.T) {
	in := `<h2>Rules</h2>` +
		`<p>Naming Consistency</p><p>Prefix every campaign</p>` +
		`<p>Budget Allocation</p><p></p><p>70/30 brand &amp; generic</p>` +
		`<p>Bid Strategy</p><p>Target CPA</p>` +
		`<p>Data Review Frequency</p><p>Weekly</p>`
	out := newCleaner(t).Clean(in)

	if strings.Contains(out, "<h2>") {
		t.Errorf("expected original content replaced: %s", out)
	}
	for _, want := range []string{
		"<th>Element</th><th>Rule or Best Practice</th>",
		"<tr><td>Naming Consistency</td><td>Prefix every campaign</td></tr>",
		"<tr><td>Budget Allocation</td><td>70/30 brand &amp; generic</td></tr>",
		"<tr><td>Data Review Frequency</td><td>Weekly</td></tr>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %s", want, out)
		}
	}
}

func TestClean_TooFewPairsDoesNotSynthesize(t *testing.T) {
	in := `<p>Naming Consistency</p><p>Prefix</p><p>Bid Strategy</p><p>Target CPA</p><p>Placement Focus</p><p>Feeds</p>`
	if out := newCleaner(t).Clean(in); out != in {
		t.Errorf("expected unchanged fragment, got %s", out)
	}
}

func TestClean_NoSynthesisWhenTableExists(t *testing.T) {
	in := `<table border="0"><tbody><tr><td>x</td></tr></tbody></table>` +
		`<p>Naming Consistency</p><p>a</p><p>Budget Allocation</p><p>b</p>` +
		`<p>Bid Strategy</p><p>c</p><p>Placement Focus</p><p>d</p>`
	if out := newCleaner(t).Clean(in); out != in {
		t.Errorf("expected unchanged fragment, got %s", out)
	}
}

func TestParseVocabulary_OverlaysDefaults(t *testing.T) {
	v, err := ParseVocabulary([]byte("caption_labels: [Stray Caption]\nmax_removals: 2\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(v.RuleLabels) != len(DefaultVocabulary().RuleLabels) {
		t.Errorf("expected default rule labels kept, got %v", v.RuleLabels)
	}

	c, err := NewCleaner(v)
	if err != nil {
		t.Fatalf("new cleaner: %v", err)
	}
	in := namingTable + `<p>Stray Caption</p><p>Use prefix ABC</p><p>Use prefix ABC</p>`
	out := c.Clean(in)
	if strings.Contains(out, "Stray Caption") {
		t.Errorf("expected custom caption removed: %s", out)
	}
	if strings.Count(out, "<p>Use prefix ABC</p>") != 1 {
		t.Errorf("expected custom cap of 2 removals: %s", out)
	}
}

func TestParseVocabulary_RejectsBadPatterns(t *testing.T) {
	cases := []string{
		"section_guard: '(['\n",
		"item_patterns: ['(?P<']\n",
		"table_headers: [only-one]\n",
		"max_removals: [not, a, number]\n",
	}
	for _, data := range cases {
		if _, err := ParseVocabulary([]byte(data)); !errors.Is(err, ErrBadVocabulary) {
			t.Errorf("input %q: expected ErrBadVocabulary, got %v", data, err)
		}
	}
}
