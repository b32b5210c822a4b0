package parse

import (
	"regexp"
	"strings"

	"github.com/SvenDH/inkwell/ability"
)

// wholePatterns recognize instructions that span several sentences and must
// be read together.
var wholePatterns = []struct {
	re    *regexp.Regexp
	build func(m []string) ability.Effect
}{
	{re(`^look at the top (\w+) cards? of your deck\. put (?:them|one) back on (?:the )?top of your deck in any order\.?$`), func(m []string) ability.Effect {
		return ability.LookAndDistribute{Amount: mustNumber(m[1]), TopOnly: true}
	}},
	{re(`^look at the top (\w+) cards? of your deck\. put (?:them|any number of them|each of them) on (?:the )?top or (?:the )?bottom of your deck in any order\.?$`), func(m []string) ability.Effect {
		return ability.LookAndDistribute{Amount: mustNumber(m[1])}
	}},
	{re(`^look at the top (\w+) cards? of your deck\. put (?:them|all of them) on the bottom of your deck in any order\.?$`), func(m []string) ability.Effect {
		return ability.LookAndDistribute{Amount: mustNumber(m[1]), BottomOnly: true}
	}},
	{re(`^look at the top (two) cards of your deck\. put one on (?:the )?top of your deck and the other on the bottom of your deck\.?$`), func(m []string) ability.Effect {
		return ability.LookAndDistribute{Amount: 2}
	}},
	{re(`^look at the top (\w+) cards? of your deck\. you may (reveal )?(?:up to (\w+) |an? )?(.+?) and put (?:it|them) into your hand\. put the rest on the bottom of your deck in any order\.?$`), func(m []string) ability.Effect {
		f, ok := parseFilter(m[4])
		if !ok {
			return nil
		}
		take := 1
		if m[3] != "" {
			take = mustNumber(m[3])
		}
		return ability.LookAndTake{Amount: mustNumber(m[1]), Take: take, Filter: f, Destination: ability.ZoneHand, Reveal: m[2] != ""}
	}},
	{re(`^search your deck for (?:an? |up to (\w+) )?(.+?) and reveal (?:it|that card) to all players\. (?:put that card into your hand and shuffle your deck|shuffle your deck and put that card into your hand)\.?$`), func(m []string) ability.Effect {
		return search(m[1], m[2], true)
	}},
	{re(`^search your deck for (?:an? |up to (\w+) )?(.+?) and put (?:it|that card|them) into your hand\. (?:then )?shuffle your deck\.?$`), func(m []string) ability.Effect {
		return search(m[1], m[2], false)
	}},
	{re(`^reveal the top card of your deck\. if it's an? (.+?), (?:you may )?put (?:it|that card) into your hand\. otherwise, put it on the (?:top|bottom) of your deck\.?$`), func(m []string) ability.Effect {
		f, ok := parseFilter(m[1])
		if !ok {
			return nil
		}
		return ability.RevealTopConditional{Filter: f, Destination: ability.ZoneHand}
	}},
	{re(`^remove up to (\w+) damage from (.+?)\. draw a card for each 1 damage removed this way\.?$`), func(m []string) ability.Effect {
		st := &clauseState{}
		t, ok := st.parseTarget(m[2])
		if !ok {
			return nil
		}
		return ability.HealAndDraw{Max: mustNumber(m[1]), Target: t}
	}},
}

func search(amount, phrase string, reveal bool) ability.Effect {
	f, ok := parseFilter(phrase)
	if !ok {
		return nil
	}
	n := 1
	if amount != "" {
		n = mustNumber(amount)
	}
	return ability.SearchDeck{Filter: f, Amount: n, Destination: ability.ZoneHand, Reveal: reveal}
}

func whole(text string) ability.Effect {
	if !strings.Contains(text, ". ") {
		return nil
	}
	for _, p := range wholePatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			if e := p.build(m); e != nil {
				return e
			}
		}
	}
	return nil
}
