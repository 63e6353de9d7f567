// Package heading classifies a line or a flattened block's text as the opening of
// a new logical section. Source documents mix numbering conventions, so the
// classifier is an ordered table of pattern families evaluated first-match-wins.
package heading

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is the numbering/labeling convention a heading follows.
type Kind int

const (
	None Kind = iota
	Phase
	DottedDecimal
	Decimal
	Step
	GeneralRules
)

var kindNames = map[Kind]string{
	None:          "none",
	Phase:         "phase",
	DottedDecimal: "dotted_decimal",
	Decimal:       "decimal",
	Step:          "step",
	GeneralRules:  "general_rules",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText lets Kind serialize as its name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown heading kind %q", b)
}

type matcher struct {
	kind Kind
	re   *regexp.Regexp
}

// families is evaluated in order; the first matching entry classifies the text.
var families = []matcher{
	{Phase, regexp.MustCompile(`(?i)^phase\s*\d+`)},
	{DottedDecimal, regexp.MustCompile(`^\d+\.\d+(\.\d+)*\.?\s+\S`)},
	{Decimal, regexp.MustCompile(`^\d+\.\s+\S`)},
	{Step, regexp.MustCompile(`(?i)^step\s*\d+`)},
	{GeneralRules, regexp.MustCompile(`(?i)^general\s+rules\b`)},
}

// TextFamilies are the conventions recognized in flat text documents.
var TextFamilies = []Kind{Phase, DottedDecimal, Decimal, Step}

// MarkupFamilies add the literal "General Rules" label, which only appears as a
// styled block in converted documents.
var MarkupFamilies = []Kind{Phase, DottedDecimal, Decimal, Step, GeneralRules}

// dominance is the order in which Dominant mode looks for a load-bearing family.
var dominance = []Kind{DottedDecimal, Phase, Decimal, Step, GeneralRules}

// Classify returns the first family whose pattern matches text, or None.
func Classify(text string) Kind {
	text = strings.TrimSpace(text)
	if text == "" {
		return None
	}
	for _, m := range families {
		if m.re.MatchString(text) {
			return m.kind
		}
	}
	return None
}

var (
	numberedLine   = regexp.MustCompile(`^\d+[.)\-](\s|$|\D)`)
	numberedPrefix = regexp.MustCompile(`^\d+[.)\-]\s*`)
)

// IsNumbered reports whether text starts with a bare list number such as
// "3)", "3." or "3-". Dates and decimals ("2024-05", "3.14") are not list numbers.
func IsNumbered(text string) bool {
	return numberedLine.MatchString(strings.TrimSpace(text))
}

// StripNumber removes a leading list number and the whitespace after it.
func StripNumber(text string) string {
	return numberedPrefix.ReplaceAllString(strings.TrimSpace(text), "")
}
