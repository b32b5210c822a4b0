package parse

import (
	"strings"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
)

const eventVerbs = `(quests|challenges(?: another character)?|is challenged|is banished in a challenge|is banished|banishes another character in a challenge|is dealt damage|moves to a location|sings a song|is readied)`

func verbEvent(verb string) ability.Event {
	switch v := strings.ToLower(verb); {
	case v == "quests":
		return ability.EventQuest
	case strings.HasPrefix(v, "challenges"):
		return ability.EventChallenge
	case v == "is challenged":
		return ability.EventChallenged
	case v == "is banished in a challenge":
		return ability.EventBanishedInChallenge
	case v == "is banished":
		return ability.EventBanished
	case strings.HasPrefix(v, "banishes"):
		return ability.EventBanishesInChallenge
	case v == "is dealt damage":
		return ability.EventDamaged
	case v == "moves to a location":
		return ability.EventMovedToLocation
	case v == "sings a song":
		return ability.EventSing
	}
	return ability.EventReadied
}

// trigger builds a triggered definition from the effect text. It returns nil
// when the effect text is not understood.
func trigger(body string, subject ability.Subject, f *ability.Filter, events ...ability.Event) *ability.Definition {
	effects := parseBody(body)
	if len(effects) == 0 {
		return nil
	}
	def := &ability.Definition{
		Kind:           ability.Triggered,
		Events:         events,
		TriggerSubject: subject,
		TriggerFilter:  f,
		Effects:        effects,
	}
	if len(effects) == 1 {
		_, def.Optional = effects[0].(ability.May)
	}
	return def
}

func triggerFilter(phrase string) (*ability.Filter, bool) {
	f, ok := parseFilter(phrase)
	if !ok {
		return nil, false
	}
	f.Owner, f.ExcludeSelf = "", false
	if len(f.Types) == 0 && len(f.Classifications) == 0 && f.Name == "" && f.Cost == nil && f.Keyword == "" {
		return nil, true
	}
	return &f, true
}

var triggeredTable Table

func init() {
	triggeredTable = newTable(
		Pattern{Name: "once_per_turn", Priority: 0, Re: re(`^once per turn, (.+)$`), Build: func(m []string, c *card.Card, _ string) *ability.Definition {
			def, _ := triggeredTable.match(c, capitalize(m[1]))
			if def != nil {
				def.OncePerTurn = true
			}
			return def
		}},
		Pattern{Name: "during_your_turn", Priority: 1, Re: re(`^during your turn, (whenever .+)$`), Build: func(m []string, c *card.Card, _ string) *ability.Definition {
			def, _ := triggeredTable.match(c, capitalize(m[1]))
			if def != nil {
				def.EventConditions = append(def.EventConditions, ability.Condition{Kind: ability.CondYourTurn})
			}
			return def
		}},
		Pattern{Name: "play_and_event", Priority: 5, Re: re(`^when you play this (?:character|item|location) and whenever (?:it|he|she|they|this character) ` + eventVerbs + `, (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			return trigger(m[2], ability.SubjectSelf, nil, ability.EventCardPlayed, verbEvent(m[1]))
		}},
		Pattern{Name: "play_self", Priority: 10, Re: re(`^when you play this (?:character|item|location|action), (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			return trigger(m[1], ability.SubjectSelf, nil, ability.EventCardPlayed)
		}},
		Pattern{Name: "self_event", Priority: 20, Re: re(`^when(?:ever)? (?:this (?:character|item|location)|he|she|it|they) ` + eventVerbs + `, (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			return trigger(m[2], ability.SubjectSelf, nil, verbEvent(m[1]))
		}},
		Pattern{Name: "yours_event", Priority: 30, Re: re(`^whenever one of your (other )?(.+?) ` + eventVerbs + `, (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			f, ok := triggerFilter(m[2])
			if !ok {
				return nil
			}
			subject := ability.SubjectYours
			if m[1] != "" {
				subject = ability.SubjectOtherYours
			}
			return trigger(m[4], subject, f, verbEvent(m[3]))
		}},
		Pattern{Name: "opposing_event", Priority: 35, Re: re(`^whenever an? opposing (.+?) ` + eventVerbs + `, (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			f, ok := triggerFilter(m[1])
			if !ok {
				return nil
			}
			return trigger(m[3], ability.SubjectOpposing, f, verbEvent(m[2]))
		}},
		Pattern{Name: "you_play", Priority: 40, Re: re(`^whenever you play (an?|another) (.+?), (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			f, ok := triggerFilter(m[2])
			if !ok {
				return nil
			}
			subject := ability.SubjectYours
			if strings.EqualFold(m[1], "another") {
				subject = ability.SubjectOtherYours
			}
			return trigger(m[3], subject, f, ability.EventCardPlayed)
		}},
		Pattern{Name: "opponent_plays", Priority: 45, Re: re(`^whenever an opponent plays an? (.+?), (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			f, ok := triggerFilter(m[1])
			if !ok {
				return nil
			}
			return trigger(m[2], ability.SubjectOpposing, f, ability.EventCardPlayed)
		}},
		Pattern{Name: "you_ink", Priority: 50, Re: re(`^whenever you put a card into your inkwell, (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			return trigger(m[1], ability.SubjectYours, nil, ability.EventInkPlayed)
		}},
		Pattern{Name: "you_draw", Priority: 55, Re: re(`^whenever you draw a card, (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			return trigger(m[1], ability.SubjectYours, nil, ability.EventCardDrawn)
		}},
		Pattern{Name: "turn_start", Priority: 60, Re: re(`^at the start of your turn, (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			return trigger(m[1], ability.SubjectSelf, nil, ability.EventTurnStart)
		}},
		Pattern{Name: "turn_end", Priority: 61, Re: re(`^at the end of your turn, (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			return trigger(m[1], ability.SubjectSelf, nil, ability.EventTurnEnd)
		}},
		Pattern{Name: "opponent_turn_end", Priority: 62, Re: re(`^at the end of (?:each )?(?:an )?opponent's turn, (.+)$`), Build: func(m []string, _ *card.Card, _ string) *ability.Definition {
			return trigger(m[1], ability.SubjectOpposing, nil, ability.EventTurnEnd)
		}},
	)
}
