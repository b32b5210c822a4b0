package game

import (
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
)

// Card is one physical copy of a card definition inside a game.
type Card struct {
	ID    string
	Def   *card.Card
	Owner *Player
	Zone  ability.Zone

	Damage  int
	Exerted bool

	// Displayed stats. They are refreshed from the definition plus active
	// effects and are never folded again.
	Strength  int
	Willpower int
	Lore      int

	Abilities []ability.Definition

	// EnteredTurn is the turn number the card last entered play.
	EnteredTurn int
	// Used holds ability ids already used this turn.
	Used map[string]bool
}

func NewCard(def *card.Card, owner *Player, zone ability.Zone) *Card {
	return &Card{
		ID:        ulid.Make().String(),
		Def:       def,
		Owner:     owner,
		Zone:      zone,
		Strength:  def.Strength,
		Willpower: def.Willpower,
		Lore:      def.Lore,
	}
}

func (c *Card) Name() string { return c.Def.Name }

func (c *Card) Type() card.Type { return c.Def.Type }

func (c *Card) IsCharacter() bool { return c.Def.Type == card.TypeCharacter }

func (c *Card) InPlay() bool { return c.Zone == ability.ZonePlay }

func (c *Card) Damaged() bool { return c.Damage > 0 }

func (c *Card) String() string {
	return fmt.Sprintf("%s[%s]", c.Def.FullName(), c.Zone)
}

// reset clears per-object state when the card changes zones.
func (c *Card) reset() {
	c.Damage = 0
	c.Exerted = false
	c.Strength = c.Def.Strength
	c.Willpower = c.Def.Willpower
	c.Lore = c.Def.Lore
	c.Used = nil
}
