package parse

import (
	"regexp"
	"sort"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
)

// Builder turns a regex match into a definition. Returning nil passes the
// text on to the next pattern.
type Builder func(m []string, c *card.Card, text string) *ability.Definition

// Pattern is one named regex recognizer. Lower Priority values are tried
// first.
type Pattern struct {
	Name     string
	Priority int
	Re       *regexp.Regexp
	Build    Builder
}

// Table is an ordered set of patterns of one ability kind.
type Table []Pattern

func newTable(patterns ...Pattern) Table {
	t := Table(patterns)
	sort.SliceStable(t, func(i, j int) bool { return t[i].Priority < t[j].Priority })
	return t
}

// match returns the first definition built by a matching pattern.
func (t Table) match(c *card.Card, text string) (*ability.Definition, string) {
	for _, p := range t {
		m := p.Re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if def := p.Build(m, c, text); def.Valid() {
			return def, p.Name
		}
	}
	return nil, ""
}

// Names lists the patterns in the order they are tried.
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, p := range t {
		names[i] = p.Name
	}
	return names
}

// re compiles a case-insensitive pattern.
func re(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + expr)
}
