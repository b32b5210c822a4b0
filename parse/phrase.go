package parse

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
)

// clauseState carries what earlier clauses of the same ability resolved, so
// pronouns can refer back to them.
type clauseState struct {
	targeted bool
}

var keywordNames = map[string]ability.Keyword{
	"bodyguard":       ability.Bodyguard,
	"evasive":         ability.Evasive,
	"rush":            ability.Rush,
	"ward":            ability.Ward,
	"reckless":        ability.Reckless,
	"support":         ability.Support,
	"vanish":          ability.Vanish,
	"alert":           ability.Alert,
	"singer":          ability.Singer,
	"shift":           ability.Shift,
	"universal shift": ability.UniversalShift,
	"challenger":      ability.Challenger,
	"resist":          ability.Resist,
	"boost":           ability.Boost,
	"sing together":   ability.SingTogether,
}

var (
	selfPhrases    = []string{"this character", "this item", "this location", "him", "her", "he", "she"}
	samePhrases    = []string{"it", "them", "they", "that character", "that card", "that item", "that location", "those characters", "the chosen character"}
	triggerPhrases = []string{"the challenging character", "the challenged character", "the banished character", "that opposing character"}
)

// parseTarget reads a target phrase such as "chosen opposing character" or
// "your other characters".
func (st *clauseState) parseTarget(phrase string) (ability.Target, bool) {
	phrase = strings.TrimSpace(phrase)
	lower := strings.ToLower(phrase)
	switch {
	case contains(selfPhrases, lower):
		return ability.Self{}, true
	case contains(samePhrases, lower):
		if st.targeted {
			return ability.SameTarget{}, true
		}
		st.targeted = true
		return ability.TriggerCard{}, true
	case contains(triggerPhrases, lower):
		st.targeted = true
		return ability.TriggerCard{}, true
	case lower == "the top card of your deck":
		return ability.TopOfDeck{Player: ability.PlayerYou}, true
	case lower == "the top card of each opponent's deck":
		return ability.TopOfDeck{Player: ability.PlayerEachOpponent}, true
	}

	for _, p := range []string{"each ", "all "} {
		if strings.HasPrefix(lower, p) {
			f, ok := parseFilter(phrase[len(p):])
			if !ok {
				return nil, false
			}
			st.targeted = true
			return ability.AllCards{Filter: f}, true
		}
	}
	if t, ok := st.parseChosen(phrase); ok {
		return t, true
	}
	// Plural phrases like "your other characters" or "opposing items" are
	// every matching card.
	if plural(lower) && (strings.HasPrefix(lower, "your ") || strings.HasPrefix(lower, "opposing ")) {
		f, ok := parseFilter(phrase)
		if !ok {
			return nil, false
		}
		st.targeted = true
		return ability.AllCards{Filter: f}, true
	}
	return nil, false
}

var (
	upToRe   = regexp.MustCompile(`(?i)^up to (\w+) `)
	ofYourRe = regexp.MustCompile(`(?i)^(\w+) of your (.+)$`)
)

func (st *clauseState) parseChosen(phrase string) (ability.Target, bool) {
	t := ability.Chosen{Count: 1}
	if m := upToRe.FindStringSubmatch(phrase); m != nil {
		n, ok := number(m[1])
		if !ok {
			return nil, false
		}
		t.Count, t.UpTo = n, true
		phrase = phrase[len(m[0]):]
	}
	if m := ofYourRe.FindStringSubmatch(phrase); m != nil {
		n, ok := number(m[1])
		if !ok {
			return nil, false
		}
		f, ok := parseFilter(m[2])
		if !ok {
			return nil, false
		}
		f.Owner = ability.OwnerYou
		t.Count, t.Filter = max(t.Count, n), f
		st.targeted = true
		return t, true
	}
	words := strings.Fields(phrase)
	if len(words) > 1 && !t.UpTo {
		if strings.EqualFold(words[0], "another") {
			t.Filter.ExcludeSelf = true
			words = words[1:]
		} else if n, ok := number(words[0]); ok {
			t.Count = n
			words = words[1:]
		}
	}
	if len(words) < 2 || !strings.EqualFold(words[0], "chosen") {
		return nil, false
	}
	rest := strings.Join(words[1:], " ")
	owner := ability.OwnerAny
	if r, ok := strings.CutSuffix(rest, " of yours"); ok {
		rest, owner = r, ability.OwnerYou
	}
	f, ok := parseFilter(rest)
	if !ok {
		return nil, false
	}
	f.ExcludeSelf = f.ExcludeSelf || t.Filter.ExcludeSelf
	if owner != ability.OwnerAny {
		f.Owner = owner
	}
	t.Filter = f
	st.targeted = true
	return t, true
}

var filterSuffixes = []struct {
	re    *regexp.Regexp
	apply func(m []string, f *ability.Filter)
}{
	{regexp.MustCompile(`(?i) with cost (\d+) or (less|more)$`), func(m []string, f *ability.Filter) {
		f.Cost = compare(m[1], m[2])
	}},
	{regexp.MustCompile(`(?i) with (\d+) \{(s|w)\} or (less|more)$`), func(m []string, f *ability.Filter) {
		if strings.EqualFold(m[2], "s") {
			f.Strength = compare(m[1], m[3])
		} else {
			f.Willpower = compare(m[1], m[3])
		}
	}},
	{regexp.MustCompile(` named (.+)$`), func(m []string, f *ability.Filter) {
		f.Name = m[1]
	}},
	{regexp.MustCompile(`(?i) with (bodyguard|evasive|rush|ward|reckless|support|vanish|alert|challenger|resist|singer)$`), func(m []string, f *ability.Filter) {
		f.Keyword = keywordNames[strings.ToLower(m[1])]
	}},
	{regexp.MustCompile(`(?i) (?:in play|from your hand)$`), func([]string, *ability.Filter) {}},
}

var nounTypes = map[string][]card.Type{
	"character": {card.TypeCharacter},
	"item":      {card.TypeItem},
	"location":  {card.TypeLocation},
	"action":    {card.TypeAction},
	"song":      {card.TypeAction},
	"card":      nil,
}

// parseFilter reads a card description such as "opposing damaged Villain
// character with cost 3 or less".
func parseFilter(phrase string) (ability.Filter, bool) {
	var f ability.Filter
	phrase = strings.TrimSpace(phrase)
	for matched := true; matched; {
		matched = false
		for _, s := range filterSuffixes {
			if m := s.re.FindStringSubmatch(phrase); m != nil {
				s.apply(m, &f)
				phrase = strings.TrimSpace(phrase[:len(phrase)-len(m[0])])
				matched = true
			}
		}
	}
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return f, false
	}
	noun := singular(strings.ToLower(words[len(words)-1]))
	types, ok := nounTypes[noun]
	if !ok {
		return f, false
	}
	words = words[:len(words)-1]
	f.Types = types
	if noun == "song" {
		f.Classifications = append(f.Classifications, "Song")
	}
	// "character card" names the type before the noun.
	if noun == "card" && len(words) > 0 {
		if t, ok := nounTypes[singular(strings.ToLower(words[len(words)-1]))]; ok && t != nil {
			f.Types = t
			words = words[:len(words)-1]
		}
	}

	var class []string
	flush := func() {
		if len(class) > 0 {
			f.Classifications = append(f.Classifications, strings.Join(class, " "))
			class = nil
		}
	}
	for _, w := range words {
		switch lw := strings.ToLower(w); lw {
		case "opposing":
			f.Owner = ability.OwnerOpponent
		case "your":
			f.Owner = ability.OwnerYou
		case "other":
			f.ExcludeSelf = true
		case "damaged":
			f.Damaged = ability.BoolPtr(true)
		case "undamaged":
			f.Damaged = ability.BoolPtr(false)
		case "exerted":
			f.Exerted = ability.BoolPtr(true)
		case "ready":
			f.Exerted = ability.BoolPtr(false)
		case "a", "an", "one":
		default:
			if t, ok := strings.CutPrefix(lw, "non-"); ok {
				flush()
				f.Types = exclude(singular(t))
				continue
			}
			if r := []rune(w)[0]; unicode.IsUpper(r) {
				class = append(class, w)
				continue
			}
			return f, false
		}
		flush()
	}
	flush()
	return f, true
}

func exclude(noun string) []card.Type {
	var out []card.Type
	for _, t := range []card.Type{card.TypeCharacter, card.TypeAction, card.TypeItem, card.TypeLocation} {
		if noun != string(t) {
			out = append(out, t)
		}
	}
	return out
}

func compare(n, dir string) *ability.Compare {
	op := ability.LessOrEqual
	if strings.EqualFold(dir, "more") {
		op = ability.GreaterOrEqual
	}
	return &ability.Compare{Op: op, Value: mustNumber(n)}
}

func singular(w string) string {
	if strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") {
		return strings.TrimSuffix(w, "s")
	}
	return w
}

func plural(phrase string) bool {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return false
	}
	last := words[len(words)-1]
	_, ok := nounTypes[singular(last)]
	return ok && singular(last) != last
}

var (
	inHandRe    = regexp.MustCompile(`(?i)^cards? in your hand$`)
	inDiscardRe = regexp.MustCompile(`(?i)^(.+?) in your discard(?: pile)?$`)
	youHaveRe   = regexp.MustCompile(`(?i)^(.+?) you have in play$`)
	theyHaveRe  = regexp.MustCompile(`(?i)^(.+?) (?:your opponents|opponents) have in play$`)
	inPlayRe    = regexp.MustCompile(`(?i)^(.+?) in play$`)
	selfStatRe  = regexp.MustCompile(`(?i)^(?:this character's|his|her|its) (?:\{(s|w|l)\}|(strength|willpower|lore))$`)
	selfDmgRe   = regexp.MustCompile(`(?i)^(?:the )?damage on (?:this character|him|her|it)$`)
)

var statSymbols = map[string]ability.Stat{
	"s": ability.Strength, "strength": ability.Strength,
	"w": ability.Willpower, "willpower": ability.Willpower,
	"l": ability.Lore, "lore": ability.Lore,
}

// parseCount reads a quantity computed at resolution, e.g. "the number of
// cards in your hand".
func parseCount(phrase string) (ability.Count, bool) {
	phrase = strings.TrimSpace(phrase)
	phrase = strings.TrimPrefix(phrase, "the number of ")
	switch {
	case inHandRe.MatchString(phrase):
		return ability.Count{Kind: ability.CountInHand, Owner: ability.OwnerYou}, true
	case selfDmgRe.MatchString(phrase):
		return ability.Count{Kind: ability.CountSelfDamage}, true
	}
	if m := selfStatRe.FindStringSubmatch(phrase); m != nil {
		return ability.Count{Kind: ability.CountSelfStat, Stat: statSymbols[strings.ToLower(m[1]+m[2])]}, true
	}
	if m := inDiscardRe.FindStringSubmatch(phrase); m != nil {
		if f, ok := parseFilter(m[1]); ok {
			return ability.Count{Kind: ability.CountInDiscard, Filter: f, Owner: ability.OwnerYou}, true
		}
		return ability.Count{}, false
	}
	for _, r := range []struct {
		re    *regexp.Regexp
		owner ability.Owner
	}{{youHaveRe, ability.OwnerYou}, {theyHaveRe, ability.OwnerOpponent}, {inPlayRe, ability.OwnerAny}} {
		if m := r.re.FindStringSubmatch(phrase); m != nil {
			f, ok := parseFilter(m[1])
			if !ok {
				return ability.Count{}, false
			}
			owner := r.owner
			if owner == ability.OwnerAny {
				owner = f.Owner
			}
			f.Owner = ""
			return ability.Count{Kind: ability.CountInPlay, Filter: f, Owner: owner}, true
		}
	}
	return ability.Count{}, false
}

var conditionPatterns = []struct {
	re    *regexp.Regexp
	build func(m []string) ability.Condition
}{
	{regexp.MustCompile(`(?i)^(?:it's|it is) your turn$|^during your turn$`), func([]string) ability.Condition {
		return ability.Condition{Kind: ability.CondYourTurn}
	}},
	{regexp.MustCompile(`(?i)^(?:it's|it is) not your turn$|^during (?:an opponent's turn|opponents' turns)$`), func([]string) ability.Condition {
		return ability.Condition{Kind: ability.CondNotYourTurn}
	}},
	{regexp.MustCompile(`(?i)^this character (?:has no damage|is undamaged)$`), func([]string) ability.Condition {
		return ability.Condition{Kind: ability.CondSelfUndamaged}
	}},
	{regexp.MustCompile(`(?i)^this character (?:is damaged|has damage)$`), func([]string) ability.Condition {
		return ability.Condition{Kind: ability.CondSelfDamaged}
	}},
	{regexp.MustCompile(`(?i)^this character is exerted$`), func([]string) ability.Condition {
		return ability.Condition{Kind: ability.CondSelfExerted}
	}},
	{regexp.MustCompile(`(?i)^you have (\w+) or more other characters in play$`), func(m []string) ability.Condition {
		return ability.Condition{Kind: ability.CondOtherCharacters, Value: mustNumber(m[1])}
	}},
	{regexp.MustCompile(`(?i)^you have (\w+) or more items in play$`), func(m []string) ability.Condition {
		return ability.Condition{Kind: ability.CondItemsInPlay, Value: mustNumber(m[1])}
	}},
	{regexp.MustCompile(`(?i)^you have a character named (.+?) in play$`), func(m []string) ability.Condition {
		return ability.Condition{Kind: ability.CondNamedInPlay, Name: m[1]}
	}},
	{regexp.MustCompile(`(?i)^you have an? (.+?) character in play$`), func(m []string) ability.Condition {
		return ability.Condition{Kind: ability.CondClassInPlay, Name: m[1]}
	}},
	{regexp.MustCompile(`(?i)^you have no cards in your hand$`), func([]string) ability.Condition {
		return ability.Condition{Kind: ability.CondHandEmpty}
	}},
	{regexp.MustCompile(`(?i)^you have (\w+) or more cards in your hand$`), func(m []string) ability.Condition {
		return ability.Condition{Kind: ability.CondHandAtLeast, Value: mustNumber(m[1])}
	}},
	{regexp.MustCompile(`(?i)^an opponent has more lore than you$`), func([]string) ability.Condition {
		return ability.Condition{Kind: ability.CondOpponentMoreLore}
	}},
	{regexp.MustCompile(`(?i)^you have (\w+) or more lore$`), func(m []string) ability.Condition {
		return ability.Condition{Kind: ability.CondLoreAtLeast, Value: mustNumber(m[1])}
	}},
	{regexp.MustCompile(`(?i)^an opponent has a damaged character in play$`), func([]string) ability.Condition {
		return ability.Condition{Kind: ability.CondDamagedOpponentChar}
	}},
}

// parseCondition reads the clause of an "if" or "while" prefix.
func parseCondition(text string) (ability.Condition, bool) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), ","))
	text = strings.TrimPrefix(strings.TrimPrefix(text, "while "), "While ")
	for _, p := range conditionPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return p.build(m), true
		}
	}
	return ability.Condition{}, false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
