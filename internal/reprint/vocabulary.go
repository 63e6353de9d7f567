package reprint

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrBadVocabulary is returned when a vocabulary cannot be compiled.
var ErrBadVocabulary = errors.New("invalid vocabulary")

// Vocabulary holds the document-family specific literals the cleaner relies on.
// The defaults match the ad-operations playbooks the engine was first tuned on;
// other document families supply their own through YAML.
type Vocabulary struct {
	// SectionGuard matches text that starts a new section; the reprint walk
	// stops there without removing it.
	SectionGuard string `yaml:"section_guard"`
	// CaptionLabels are stray table captions left behind as paragraphs.
	CaptionLabels []string `yaml:"caption_labels"`
	// ItemPatterns mark list items as table leftovers even when they match no row.
	ItemPatterns []string `yaml:"item_patterns"`
	// RuleLabels are the left-column labels used to rebuild a lost table.
	RuleLabels []string `yaml:"rule_labels"`
	// TableHeaders are the two header cells of a rebuilt table.
	TableHeaders []string `yaml:"table_headers"`

	MinSynthesizedRows int     `yaml:"min_synthesized_rows"`
	ListMatchRatio     float64 `yaml:"list_match_ratio"`
	MaxRemovals        int     `yaml:"max_removals"`
}

// DefaultVocabulary returns the built-in vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		SectionGuard:  `(?i)^(targeting\s*&\s*structure|objective|phase\s*\d+)`,
		CaptionLabels: []string{"Campaign Type", "Naming Convention", "Headline Ads", "Video Ads"},
		ItemPatterns:  []string{`(?i)\bPN-[A-Za-z0-9]+`, `(?i)\bheadline ads\b`, `(?i)\bvideo ads\b`},
		RuleLabels: []string{
			"Naming Consistency",
			"Budget Allocation",
			"Keyword Harvesting",
			"Negative Targeting",
			"Bid Strategy",
			"Placement Focus",
			"Data Review Frequency",
		},
		TableHeaders:       []string{"Element", "Rule or Best Practice"},
		MinSynthesizedRows: 4,
		ListMatchRatio:     0.6,
		MaxRemovals:        30,
	}
}

// ParseVocabulary overlays YAML data on the defaults. Keys absent from data keep
// their default values.
func ParseVocabulary(data []byte) (Vocabulary, error) {
	v := DefaultVocabulary()
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Vocabulary{}, fmt.Errorf("%w: %w", ErrBadVocabulary, err)
	}
	if _, err := v.compile(); err != nil {
		return Vocabulary{}, err
	}
	return v, nil
}

// LoadVocabulary reads a YAML vocabulary file.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("read vocabulary: %w", err)
	}
	return ParseVocabulary(data)
}

// rules is a compiled Vocabulary.
type rules struct {
	guard       *regexp.Regexp
	captions    map[string]bool
	items       []*regexp.Regexp
	labels      map[string]bool
	headers     [2]string
	minRows     int
	ratio       float64
	maxRemovals int
}

func (v Vocabulary) compile() (*rules, error) {
	r := &rules{
		captions:    lowerSet(v.CaptionLabels),
		labels:      lowerSet(v.RuleLabels),
		headers:     [2]string{"Element", "Rule or Best Practice"},
		minRows:     v.MinSynthesizedRows,
		ratio:       v.ListMatchRatio,
		maxRemovals: v.MaxRemovals,
	}
	if v.SectionGuard != "" {
		re, err := regexp.Compile(v.SectionGuard)
		if err != nil {
			return nil, fmt.Errorf("%w: section_guard: %w", ErrBadVocabulary, err)
		}
		r.guard = re
	}
	for _, p := range v.ItemPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: item_patterns: %w", ErrBadVocabulary, err)
		}
		r.items = append(r.items, re)
	}
	switch len(v.TableHeaders) {
	case 0:
	case 2:
		r.headers = [2]string{v.TableHeaders[0], v.TableHeaders[1]}
	default:
		return nil, fmt.Errorf("%w: table_headers needs exactly 2 entries, got %d", ErrBadVocabulary, len(v.TableHeaders))
	}
	if r.minRows <= 0 {
		r.minRows = 4
	}
	if r.ratio <= 0 || r.ratio > 1 {
		r.ratio = 0.6
	}
	if r.maxRemovals <= 0 {
		r.maxRemovals = 30
	}
	return r, nil
}

func lowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			set[s] = true
		}
	}
	return set
}
