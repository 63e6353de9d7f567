package heading

import (
	"fmt"
	"slices"
	"strings"
)

// Mode selects how matches from different families are combined.
type Mode int

const (
	// Combined treats a match from any enabled family as a section boundary.
	Combined Mode = iota
	// Dominant picks a single family (dotted decimal, then phase, decimal, step,
	// general rules) with enough matches and splits only on that family.
	Dominant
)

func (m Mode) String() string {
	if m == Dominant {
		return "dominant"
	}
	return "combined"
}

// ParseMode parses "combined" or "dominant" (case-insensitive, empty means combined).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "combined":
		return Combined, nil
	case "dominant":
		return Dominant, nil
	}
	return Combined, fmt.Errorf("unknown heading mode %q", s)
}

// Match is a text position that opens a new section.
type Match struct {
	Index int
	Kind  Kind
}

// Detector finds section boundaries in an ordered list of texts.
type Detector struct {
	Families   []Kind
	Mode       Mode
	MinMatches int // fewer matches than this means the convention is noise
}

// NewDetector returns a detector over the given families. minMatches below 1 is raised to 1.
func NewDetector(mode Mode, minMatches int, families []Kind) Detector {
	if minMatches < 1 {
		minMatches = 1
	}
	return Detector{Families: families, Mode: mode, MinMatches: minMatches}
}

// Find returns the boundaries in texts, in order.
func (d Detector) Find(texts []string) []Match {
	var all []Match
	for i, t := range texts {
		k := Classify(t)
		if k != None && slices.Contains(d.Families, k) {
			all = append(all, Match{Index: i, Kind: k})
		}
	}
	if d.Mode != Dominant || len(all) == 0 {
		return all
	}

	counts := make(map[Kind]int)
	for _, m := range all {
		counts[m.Kind]++
	}
	chosen := None
	for _, k := range dominance {
		if counts[k] >= d.MinMatches {
			chosen = k
			break
		}
	}
	if chosen == None {
		// No family is load-bearing; report the first one present so the gate rejects it.
		for _, k := range dominance {
			if counts[k] > 0 {
				chosen = k
				break
			}
		}
	}

	var out []Match
	for _, m := range all {
		if m.Kind == chosen {
			out = append(out, m)
		}
	}
	return out
}

// Accepts reports whether matches are numerous enough to be treated as structure.
func (d Detector) Accepts(matches []Match) bool {
	return len(matches) >= d.MinMatches
}
