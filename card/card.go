// Package card holds the static, immutable definition of a printed card as it
// is read from a catalog.
package card

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeCharacter Type = "character"
	TypeAction    Type = "action"
	TypeItem      Type = "item"
	TypeLocation  Type = "location"
)

// ParseType accepts catalog spellings ("Character", "Action - Song", ...).
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "character"):
		return TypeCharacter, nil
	case strings.HasPrefix(s, "action"), s == "song":
		return TypeAction, nil
	case strings.HasPrefix(s, "item"):
		return TypeItem, nil
	case strings.HasPrefix(s, "location"):
		return TypeLocation, nil
	}
	return "", fmt.Errorf("card: unknown type %q", s)
}

// AbilityEntry is one structured ability on a card. Effect is the clean rules
// text without the flavor name; FullText is the printed text as displayed.
type AbilityEntry struct {
	Type     string   `yaml:"type" json:"type"`
	Name     string   `yaml:"name" json:"name"`
	Keyword  string   `yaml:"keyword" json:"keyword"`
	Effect   string   `yaml:"effect" json:"effect"`
	FullText string   `yaml:"fullText" json:"fullText"`
	Costs    []string `yaml:"costs" json:"costs"`
}

// Card is a catalog card. It never changes once loaded.
type Card struct {
	ID              string         `yaml:"id" json:"id"`
	Name            string         `yaml:"name" json:"name"`
	Version         string         `yaml:"version" json:"version"`
	Type            Type           `yaml:"type" json:"type"`
	Classifications []string       `yaml:"classifications" json:"classifications"`
	Cost            int            `yaml:"cost" json:"cost"`
	Inkable         bool           `yaml:"inkwell" json:"inkwell"`
	Strength        int            `yaml:"strength" json:"strength"`
	Willpower       int            `yaml:"willpower" json:"willpower"`
	Lore            int            `yaml:"lore" json:"lore"`
	MoveCost        int            `yaml:"moveCost" json:"moveCost"`
	Abilities       []AbilityEntry `yaml:"abilities" json:"abilities"`
	TextSections    []string       `yaml:"textSections" json:"textSections"`
	Text            string         `yaml:"text" json:"text"`
}

// FullName is "Name - Version" when a version subtitle exists.
func (c *Card) FullName() string {
	if c.Version == "" {
		return c.Name
	}
	return c.Name + " - " + c.Version
}

func (c *Card) IsSong() bool {
	for _, cl := range c.Classifications {
		if strings.EqualFold(cl, "song") {
			return true
		}
	}
	return false
}

func (c *Card) HasClassification(name string) bool {
	for _, cl := range c.Classifications {
		if strings.EqualFold(cl, name) {
			return true
		}
	}
	return false
}

func (c Card) String() string {
	return fmt.Sprintf("%s [%s %d] %d/%d/%d", c.FullName(), c.Type, c.Cost, c.Strength, c.Willpower, c.Lore)
}
