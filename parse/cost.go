package parse

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/SvenDH/inkwell/ability"
)

// costClause is the part of an activated ability before the dash, e.g.
// "{e}, 2 {i}, banish this item".
type costClause struct {
	Parts []*costPart `parser:"@@ (\",\" \"and\"? @@)*"`
}

type costPart struct {
	Exert      bool        `parser:"  @\"{e}\""`
	Ink        *int        `parser:"| @Int \"{i}\""`
	Banish     string      `parser:"| \"banish\" \"this\" @(\"character\" | \"item\" | \"location\")"`
	Discard    *countedRef `parser:"| \"discard\" @@"`
	ExertOther *countedRef `parser:"| \"exert\" @@"`
}

type countedRef struct {
	Count string `parser:"@(Int | \"a\" | \"an\" | \"one\" | \"two\" | \"three\")"`
	Yours bool   `parser:"(\"of\" @\"your\")?"`
	Other bool   `parser:"@\"other\"?"`
	Noun  string `parser:"@(\"card\" | \"cards\" | \"character\" | \"characters\")"`
}

var costParser = participle.MustBuild[costClause](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "whitespace", Pattern: `\s+`},
		{Name: "Symbol", Pattern: `\{[a-z]\}`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Ident", Pattern: `[a-z']+`},
		{Name: "Punct", Pattern: `,`},
	})),
	participle.UseLookahead(2),
)

// parseCosts reads a cost clause into ability costs.
func parseCosts(text string) ([]ability.Cost, error) {
	clause, err := costParser.ParseString("", strings.ToLower(strings.TrimSpace(text)))
	if err != nil {
		return nil, fmt.Errorf("parse: cost %q: %w", text, err)
	}
	costs := make([]ability.Cost, 0, len(clause.Parts))
	for _, p := range clause.Parts {
		switch {
		case p.Exert:
			costs = append(costs, ability.Cost{Kind: ability.CostExert})
		case p.Ink != nil:
			costs = append(costs, ability.Cost{Kind: ability.CostInk, Amount: *p.Ink})
		case p.Banish != "":
			costs = append(costs, ability.Cost{Kind: ability.CostBanishSelf})
		case p.Discard != nil:
			costs = append(costs, ability.Cost{Kind: ability.CostDiscard, Amount: mustNumber(p.Discard.Count)})
		case p.ExertOther != nil:
			if !strings.HasPrefix(p.ExertOther.Noun, "character") {
				return nil, fmt.Errorf("parse: cost %q: can only exert characters", text)
			}
			costs = append(costs, ability.Cost{Kind: ability.CostExertCharacter, Amount: mustNumber(p.ExertOther.Count)})
		}
	}
	return costs, nil
}
