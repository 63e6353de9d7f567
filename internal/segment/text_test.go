package segment

import (
	"strings"
	"testing"

	"github.com/dgallion1/docsteps/internal/doctree"
	"github.com/dgallion1/docsteps/internal/heading"
	"github.com/dgallion1/docsteps/internal/textnorm"
	"github.com/google/go-cmp/cmp"
)

func stepTexts(steps []doctree.Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Text
	}
	return out
}

func TestText_SingleNumberedLineDoesNotFragment(t *testing.T) {
	input := "Intro text.\n7. Notes about something.\nMore text."
	res := New(DefaultConfig()).Text(input)

	if res.Strategy != Whole {
		t.Errorf("expected strategy %q, got %q", Whole, res.Strategy)
	}
	if len(res.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(res.Steps))
	}
	if res.Steps[0].Text != input {
		t.Errorf("expected full text %q, got %q", input, res.Steps[0].Text)
	}
}

func TestText_DottedDecimalHeadings(t *testing.T) {
	input := "1.1 Setup\nDo X.\n1.2 Execution\nDo Y.\n1.3 Verify\nDo Z."
	res := New(DefaultConfig()).Text(input)

	want := []string{"1.1 Setup Do X.", "1.2 Execution Do Y.", "1.3 Verify Do Z."}
	if diff := cmp.Diff(want, stepTexts(res.Steps)); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
	for i, s := range res.Steps {
		if s.Index != i {
			t.Errorf("step %d: expected index %d, got %d", i, i, s.Index)
		}
		if s.Heading != heading.DottedDecimal {
			t.Errorf("step %d: expected dotted_decimal heading, got %s", i, s.Heading)
		}
		if s.Markup != nil {
			t.Errorf("step %d: expected no markup for plain text", i)
		}
	}
}

func TestText_LeadingContentBecomesItsOwnStep(t *testing.T) {
	input := "SOP: Weekly review\nOwner: ops\nPhase 1: Collect\nPull numbers.\nPhase 2: Report\nSend deck."
	res := New(DefaultConfig()).Text(input)

	want := []string{"SOP: Weekly review Owner: ops", "Phase 1: Collect Pull numbers.", "Phase 2: Report Send deck."}
	if diff := cmp.Diff(want, stepTexts(res.Steps)); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
	if res.Steps[0].Heading != heading.None {
		t.Errorf("expected leading step without heading, got %s", res.Steps[0].Heading)
	}
}

func TestText_NumberedListFallback(t *testing.T) {
	input := "Checklist\n1) Open the console\nuse the admin account\n2) Close the ticket\n3- Notify the team"
	res := New(DefaultConfig()).Text(input)

	if res.Strategy != Numbered {
		t.Fatalf("expected strategy %q, got %q", Numbered, res.Strategy)
	}
	want := []string{"Checklist", "Open the console use the admin account", "Close the ticket", "Notify the team"}
	if diff := cmp.Diff(want, stepTexts(res.Steps)); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestText_SingleNumberedListLineFallsThrough(t *testing.T) {
	res := New(DefaultConfig()).Text("Do this.\n1) Only one item")
	if res.Strategy != Whole || len(res.Steps) != 1 {
		t.Errorf("expected one whole step, got %q with %d steps", res.Strategy, len(res.Steps))
	}
}

func TestText_EmptyDocumentYieldsOneEmptyStep(t *testing.T) {
	for _, input := range []string{"", "   \n\t "} {
		res := New(DefaultConfig()).Text(input)
		if len(res.Steps) != 1 {
			t.Fatalf("input %q: expected 1 step, got %d", input, len(res.Steps))
		}
		if res.Steps[0].Text != "" {
			t.Errorf("input %q: expected empty text, got %q", input, res.Steps[0].Text)
		}
	}
}

func TestText_MixedFamiliesCombined(t *testing.T) {
	input := "Phase 1 Prep\nGather.\nStep 2 Run\nGo."
	res := New(DefaultConfig()).Text(input)
	if len(res.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(res.Steps))
	}
	if res.Steps[0].Heading != heading.Phase || res.Steps[1].Heading != heading.Step {
		t.Errorf("unexpected heading kinds %s, %s", res.Steps[0].Heading, res.Steps[1].Heading)
	}
}

func TestText_DominantModeSplitsOnOneFamily(t *testing.T) {
	input := "Phase 1 Plan\n1.1 Scope\nDefine.\n1.2 Budget\nAllocate.\nPhase 2 Do\n2.1 Build\nBuild it."
	cfg := DefaultConfig()
	cfg.Mode = heading.Dominant
	res := New(cfg).Text(input)

	want := []string{"Phase 1 Plan", "1.1 Scope Define.", "1.2 Budget Allocate. Phase 2 Do", "2.1 Build Build it."}
	if diff := cmp.Diff(want, stepTexts(res.Steps)); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestText_MinHeadingsOneAcceptsSingleHeading(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinHeadings = 1
	res := New(cfg).Text("Intro.\nStep 1 Go\nNow.")
	if res.Strategy != Headings || len(res.Steps) != 2 {
		t.Errorf("expected 2 heading steps, got %q with %d steps", res.Strategy, len(res.Steps))
	}
}

func TestText_CoverageAndDeterminism(t *testing.T) {
	inputs := []string{
		"1.1 Setup\nDo X.\n1.2 Execution\nDo Y.",
		"Preface\r\nStep 1 A\r\nStep 2 B\r\ntrailing",
		"Plain paragraph\nwith two lines",
	}
	s := New(DefaultConfig())
	for _, input := range inputs {
		first := s.Text(input)
		second := s.Text(input)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("input %q: non-deterministic output:\n%s", input, diff)
		}
		joined := textnorm.Collapse(strings.Join(stepTexts(first.Steps), " "))
		if want := textnorm.Collapse(input); joined != want {
			t.Errorf("input %q: coverage lost\nwant: %q\ngot:  %q", input, want, joined)
		}
	}
}

func TestDocument_DispatchesOnKind(t *testing.T) {
	s := New(DefaultConfig())
	plain := s.Document(doctree.NewPlainText("t", "Step 1 a\nStep 2 b"))
	if len(plain.Steps) != 2 {
		t.Errorf("expected 2 plain steps, got %d", len(plain.Steps))
	}
	tree, err := doctree.ParseHTMLString("<p>Step 1 a</p><p>Step 2 b</p><p>Step 3 c</p>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	structured := s.Document(doctree.NewStructured("t", tree))
	if len(structured.Steps) != 3 {
		t.Errorf("expected 3 structured steps, got %d", len(structured.Steps))
	}
}
