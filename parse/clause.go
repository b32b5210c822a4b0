package parse

import (
	"regexp"
	"strings"

	"github.com/SvenDH/inkwell/ability"
)

type clausePattern struct {
	re    *regexp.Regexp
	build func(m []string, st *clauseState) ability.Effect
}

const durationSuffix = `(?: (this turn|until the start of your next turn|during their next turn|at the start of their next turn))?`

func duration(s string) ability.Duration {
	switch strings.ToLower(s) {
	case "this turn":
		return ability.ThisTurn
	case "until the start of your next turn", "during their next turn", "at the start of their next turn":
		return ability.UntilStartOfNextTurn
	}
	return ""
}

var playerScopes = map[string]ability.PlayerScope{
	"":                ability.PlayerYou,
	"you":             ability.PlayerYou,
	"each player":     ability.PlayerEachPlayer,
	"each opponent":   ability.PlayerEachOpponent,
	"chosen opponent": ability.PlayerChosenOpponent,
	"chosen player":   ability.PlayerChosenOpponent,
}

func scope(s string) ability.PlayerScope {
	return playerScopes[strings.ToLower(strings.TrimSpace(s))]
}

var restrictions = map[string]ability.RestrictionKind{
	"quest":               ability.CantQuest,
	"challenge":           ability.CantChallenge,
	"be challenged":       ability.CantBeChallenged,
	"ready":               ability.CantReady,
	"sing songs":          ability.CantSing,
	"sing":                ability.CantSing,
	"be dealt damage":     ability.CantBeDealtDamage,
	"be dealt any damage": ability.CantBeDealtDamage,
}

// withTarget parses group i as a target phrase for build.
func withTarget(i int, build func(m []string, t ability.Target) ability.Effect) func([]string, *clauseState) ability.Effect {
	return func(m []string, st *clauseState) ability.Effect {
		t, ok := st.parseTarget(m[i])
		if !ok {
			return nil
		}
		return build(m, t)
	}
}

func withFilter(i int, build func(m []string, f ability.Filter) ability.Effect) func([]string, *clauseState) ability.Effect {
	return func(m []string, _ *clauseState) ability.Effect {
		f, ok := parseFilter(m[i])
		if !ok {
			return nil
		}
		return build(m, f)
	}
}

// clauses recognize a single instruction. Order matters: more specific
// phrasings come first.
var clauses = []clausePattern{
	// resource
	{re(`^(?:(you|each player|each opponent|chosen opponent) )?draws? cards until (?:you|they) have (\w+) cards? in (?:your|their) hand$`), func(m []string, _ *clauseState) ability.Effect {
		return ability.DrawUntil{HandSize: mustNumber(m[2]), Player: scope(m[1])}
	}},
	{re(`^(?:(you|each player|each opponent|chosen opponent) )?draws? (\w+) cards?$`), func(m []string, _ *clauseState) ability.Effect {
		n, ok := number(m[2])
		if !ok {
			return nil
		}
		return ability.Draw{Amount: n, Player: scope(m[1])}
	}},
	{re(`^(?:you )?gain lore equal to (.+)$`), func(m []string, _ *clauseState) ability.Effect {
		c, ok := parseCount(m[1])
		if !ok {
			return nil
		}
		return ability.LoreEqualToCount{Count: c, Player: ability.PlayerYou}
	}},
	{re(`^(?:(you|each player|each opponent|chosen opponent) )?gains? (\w+) lore$`), func(m []string, _ *clauseState) ability.Effect {
		return ability.GainLore{Amount: mustNumber(m[2]), Player: scope(m[1])}
	}},
	{re(`^(?:(you|each player|each opponent|chosen opponent) )?loses? (\w+) lore$`), func(m []string, _ *clauseState) ability.Effect {
		return ability.LoseLore{Amount: mustNumber(m[2]), Player: scope(m[1])}
	}},

	// damage
	{re(`^deal damage to (.+?) equal to (.+)$`), func(m []string, st *clauseState) ability.Effect {
		c, ok := parseCount(m[2])
		if !ok {
			return nil
		}
		t, ok := st.parseTarget(m[1])
		if !ok {
			return nil
		}
		return ability.DamageEqualToCount{Count: c, Target: t}
	}},
	{re(`^deal (\w+) damage to (.+)$`), withTarget(2, func(m []string, t ability.Target) ability.Effect {
		return ability.Damage{Amount: mustNumber(m[1]), Target: t}
	})},
	{re(`^remove all damage from (.+)$`), withTarget(1, func(m []string, t ability.Target) ability.Effect {
		return ability.RemoveDamage{All: true, Target: t}
	})},
	{re(`^remove (up to )?(\w+) damage from (.+)$`), withTarget(3, func(m []string, t ability.Target) ability.Effect {
		return ability.RemoveDamage{Amount: mustNumber(m[2]), UpTo: m[1] != "", Target: t}
	})},
	{re(`^move (up to )?(\w+) damage (?:counters? )?from (.+?) to (.+)$`), func(m []string, st *clauseState) ability.Effect {
		from, ok := st.parseTarget(m[3])
		if !ok {
			return nil
		}
		to, ok := st.parseTarget(m[4])
		if !ok {
			return nil
		}
		return ability.MoveDamage{Amount: mustNumber(m[2]), UpTo: m[1] != "", From: from, To: to}
	}},
	{re(`^banish (.+)$`), withTarget(1, func(_ []string, t ability.Target) ability.Effect {
		return ability.Banish{Target: t}
	})},

	// zone
	{re(`^return (?:up to )?(\w+) (.+?) from your discard(?: pile)? to your hand$`), withFilter(2, func(m []string, f ability.Filter) ability.Effect {
		return ability.ReturnFromDiscard{Filter: f, Amount: mustNumber(m[1]), Destination: ability.ZoneHand}
	})},
	{re(`^return (.+?) to (?:their|its|your|his|her) (?:owner's |player's )?hands?$`), withTarget(1, func(_ []string, t ability.Target) ability.Effect {
		return ability.ReturnToHand{Target: t}
	})},
	{re(`^put (.+?) on the bottom of (?:their|its|your|his|her) (?:owner's |player's )?deck$`), withTarget(1, func(_ []string, t ability.Target) ability.Effect {
		return ability.PutOnBottom{Target: t}
	})},
	{re(`^shuffle (?:your|their) deck$`), func([]string, *clauseState) ability.Effect {
		return ability.ShuffleDeck{Player: ability.PlayerYou}
	}},
	{re(`^shuffle (.+?) into (?:their|its|your|his|her) (?:owner's |player's )?deck$`), withTarget(1, func(_ []string, t ability.Target) ability.Effect {
		return ability.ShuffleIntoDeck{Target: t}
	})},
	{re(`^(?:(each opponent|each player) puts?|put) the top (\w+ )?cards? of (?:your|their) deck into (?:your|their) inkwell(?: facedown)?( and exerted)?$`), func(m []string, _ *clauseState) ability.Effect {
		n := 1
		if m[2] != "" {
			n = mustNumber(m[2])
		}
		return ability.InkFromDeck{Amount: n, Exerted: m[3] != "", Player: scope(m[1])}
	}},
	{re(`^put (.+?) into (?:your|their|its|his|her) (?:owner's |player's )?inkwell(?: facedown)?( and exerted)?$`), withTarget(1, func(m []string, t ability.Target) ability.Effect {
		return ability.PutIntoInkwell{Target: t, Exerted: m[2] != ""}
	})},
	{re(`^(?:(each opponent|each player) puts?|put) the top (\w+) cards? of (?:your|their) deck into (?:your|their) discard(?: pile)?$`), func(m []string, _ *clauseState) ability.Effect {
		return ability.Mill{Amount: mustNumber(m[2]), Player: scope(m[1])}
	}},
	{re(`^(?:(you|each player|each opponent|chosen opponent) )?discards? (?:your|their) hand$`), func(m []string, _ *clauseState) ability.Effect {
		return ability.DiscardHand{Player: scope(m[1])}
	}},
	{re(`^each opponent chooses and discards (\w+) cards?$`), func(m []string, _ *clauseState) ability.Effect {
		return ability.OpponentChoiceDiscard{Amount: mustNumber(m[1])}
	}},
	{re(`^(?:(you|each player|each opponent|chosen opponent) )?(?:chooses? and )?discards? (\w+) cards?( at random)?$`), func(m []string, _ *clauseState) ability.Effect {
		return ability.Discard{Amount: mustNumber(m[2]), Player: scope(m[1]), Random: m[3] != ""}
	}},

	// opponent
	{re(`^each opponent chooses (\w+) of their (.+?) and (banish|exert|return|deal)(?:e?s)? (?:(\w+) damage to )?(?:that \w+|them|it|those characters)(?: to their hands?)?$`), withFilter(2, func(m []string, f ability.Filter) ability.Effect {
		n := mustNumber(m[1])
		switch strings.ToLower(m[3]) {
		case "banish":
			return ability.OpponentChoiceBanish{Amount: n, Filter: f}
		case "exert":
			return ability.OpponentChoiceExert{Amount: n, Filter: f}
		case "return":
			return ability.OpponentChoiceReturn{Amount: n, Filter: f}
		}
		return ability.OpponentChoiceDamage{Amount: n, Damage: mustNumber(m[4]), Filter: f}
	})},
	{re(`^(chosen opponent|each opponent) reveals (?:their|his or her) hand(?: and discards (.+?) of your choice)?$`), func(m []string, _ *clauseState) ability.Effect {
		e := ability.RevealHand{Player: scope(m[1])}
		if m[2] != "" {
			f, ok := parseFilter(m[2])
			if !ok {
				return nil
			}
			e.Discard = &f
		}
		return e
	}},

	// status
	{re(`^ready (.+)$`), withTarget(1, func(_ []string, t ability.Target) ability.Effect {
		return ability.Ready{Target: t}
	})},
	{re(`^exert (.+)$`), withTarget(1, func(_ []string, t ability.Target) ability.Effect {
		return ability.Exert{Target: t}
	})},
	{re(`^(.+?) gets? ([+-]\d+) \{(s|w|l)\} for each (.+?)` + durationSuffix + `$`), func(m []string, st *clauseState) ability.Effect {
		c, ok := parseCount(m[4])
		if !ok {
			return nil
		}
		t, ok := st.parseTarget(m[1])
		if !ok {
			return nil
		}
		return ability.ModifyStatsPerCount{
			Stat:     statSymbols[strings.ToLower(m[3])],
			Per:      mustNumber(m[2]),
			Count:    c,
			Target:   t,
			Duration: duration(m[5]),
		}
	}},
	{re(`^(.+?) gets? ([+-]\d+) \{(s|w|l)\}(?: and ([+-]\d+) \{(s|w|l)\})?` + durationSuffix + `$`), withTarget(1, func(m []string, t ability.Target) ability.Effect {
		d := duration(m[6])
		first := ability.ModifyStats{Stat: statSymbols[strings.ToLower(m[3])], Amount: mustNumber(m[2]), Target: t, Duration: d}
		if m[4] == "" {
			return first
		}
		second := ability.ModifyStats{Stat: statSymbols[strings.ToLower(m[5])], Amount: mustNumber(m[4]), Target: ability.SameTarget{}, Duration: d}
		if _, ok := t.(ability.Self); ok {
			second.Target = t
		}
		return ability.Sequence{Effects: []ability.Effect{first, second}}
	})},
	{re(`^(.+?) (?:gains?|has) (bodyguard|evasive|rush|ward|reckless|support|vanish|alert|challenger|resist|singer)(?: \+?(\d+))?` + durationSuffix + `$`), withTarget(1, func(m []string, t ability.Target) ability.Effect {
		e := ability.GrantKeyword{Keyword: keywordNames[strings.ToLower(m[2])], Target: t, Duration: duration(m[4])}
		if m[3] != "" {
			e.Value = ability.IntPtr(mustNumber(m[3]))
		}
		return e
	})},
	{re(`^(.+?) (?:can't|cannot) (quest|challenge|be challenged|ready|sing songs|sing|be dealt damage|be dealt any damage)` + durationSuffix + `$`), withTarget(1, func(m []string, t ability.Target) ability.Effect {
		return ability.Restriction{Restriction: restrictions[strings.ToLower(m[2])], Target: t, Duration: duration(m[3])}
	})},

	// cost
	{re(`^(?:you )?play (.+?) from your discard for free$`), withFilter(1, func(_ []string, f ability.Filter) ability.Effect {
		return ability.PlayForFree{Filter: f, From: ability.ZoneDiscard}
	})},
	{re(`^(?:you )?play (.+?) for free$`), withFilter(1, func(_ []string, f ability.Filter) ability.Effect {
		return ability.PlayForFree{Filter: f, From: ability.ZoneHand}
	})},
	{re(`^(?:you )?pay (\w+) \{i\} less for the next (.+?) you play this turn$`), withFilter(2, func(m []string, f ability.Filter) ability.Effect {
		return ability.CostReduction{Amount: mustNumber(m[1]), Filter: f, Duration: ability.ThisTurn, NextOnly: true}
	})},
	{re(`^(?:you )?pay (\w+) \{i\} less to play (.+?) this turn$`), withFilter(2, func(m []string, f ability.Filter) ability.Effect {
		return ability.CostReduction{Amount: mustNumber(m[1]), Filter: f, Duration: ability.ThisTurn}
	})},
	{re(`^(?:you may )?put an additional card from your hand into your inkwell this turn$`), func([]string, *clauseState) ability.Effect {
		return ability.ExtraInkPlay{Amount: 1}
	}},
}

// clause parses one instruction. State changes are only kept when the
// clause is recognized.
func (st *clauseState) clause(text string) ability.Effect {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "."))
	for _, p := range clauses {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		trial := *st
		if e := p.build(m, &trial); e != nil {
			*st = trial
			return e
		}
	}
	return nil
}

var sequenceSeparators = []string{", then ", " and then ", ", and ", ", ", " then ", " and "}

// sequence parses a clause, or a chain of clauses joined by "then" or "and".
func (st *clauseState) sequence(text string) ability.Effect {
	if e := st.clause(text); e != nil {
		return e
	}
	lower := strings.ToLower(text)
	for _, sep := range sequenceSeparators {
		for off := 0; ; {
			i := strings.Index(lower[off:], sep)
			if i < 0 {
				break
			}
			i += off
			off = i + 1
			trial := *st
			first := trial.clause(text[:i])
			if first == nil {
				continue
			}
			rest := trial.sequence(text[i+len(sep):])
			if rest == nil {
				continue
			}
			*st = trial
			return chain(first, rest)
		}
	}
	return nil
}

func chain(effects ...ability.Effect) ability.Effect {
	var out []ability.Effect
	for _, e := range effects {
		if seq, ok := e.(ability.Sequence); ok {
			out = append(out, seq.Effects...)
		} else {
			out = append(out, e)
		}
	}
	return ability.Sequence{Effects: out}
}

var (
	payToRe  = re(`^you may pay (\w+) \{i\} to (.+)$`)
	mayRe    = re(`^you may (.+)$`)
	ifRe     = re(`^if (.+?), (.+)$`)
	ifYouDo  = re(`^if you do, (.+)$`)
	chooseRe = re(`^choose one:?\s*(.+)$`)
)

// sentence parses one sentence, including its "you may" or "if" prefix.
func (st *clauseState) sentence(text string) ability.Effect {
	if m := payToRe.FindStringSubmatch(text); m != nil {
		n, ok := number(m[1])
		if inner := st.sequence(m[2]); ok && inner != nil {
			return ability.PayToResolve{Cost: ability.Cost{Kind: ability.CostInk, Amount: n}, Inner: inner}
		}
		return nil
	}
	if m := mayRe.FindStringSubmatch(text); m != nil {
		if inner := st.sequence(m[1]); inner != nil {
			return ability.May{Inner: inner}
		}
		return nil
	}
	if m := ifRe.FindStringSubmatch(text); m != nil && !ifYouDo.MatchString(text) {
		if cond, ok := parseCondition(m[1]); ok {
			if then := st.sentence(capitalize(m[2])); then != nil {
				return ability.Conditional{Condition: cond, Then: then}
			}
		}
		return nil
	}
	return st.sequence(text)
}

// parseBody turns the effect part of an ability into effect nodes. It
// returns nil when any part of the text is not understood.
func parseBody(text string) []ability.Effect {
	text = strings.TrimSpace(text)
	if e := whole(text); e != nil {
		return []ability.Effect{e}
	}
	if m := chooseRe.FindStringSubmatch(text); m != nil {
		return chooseOne(m[1])
	}
	st := &clauseState{}
	var out []ability.Effect
	for _, s := range sentences(text) {
		if m := ifYouDo.FindStringSubmatch(s); m != nil {
			if len(out) == 0 {
				return nil
			}
			may, ok := out[len(out)-1].(ability.May)
			if !ok || may.Then != nil {
				return nil
			}
			then := st.sequence(m[1])
			if then == nil {
				return nil
			}
			may.Then = then
			out[len(out)-1] = may
			continue
		}
		e := st.sentence(s)
		if e == nil {
			return nil
		}
		out = append(out, e)
	}
	return out
}

func chooseOne(options string) []ability.Effect {
	var choose ability.ChooseOne
	for _, opt := range strings.Split(options, "•") {
		opt = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(opt), ";"))
		if opt == "" {
			continue
		}
		effects := parseBody(opt)
		switch len(effects) {
		case 0:
			return nil
		case 1:
			choose.Options = append(choose.Options, effects[0])
		default:
			choose.Options = append(choose.Options, ability.Sequence{Effects: effects})
		}
		choose.Labels = append(choose.Labels, opt)
	}
	if len(choose.Options) < 2 {
		return nil
	}
	return []ability.Effect{choose}
}
