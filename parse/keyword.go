package parse

import (
	"strings"

	"github.com/SvenDH/inkwell/ability"
)

var (
	valuedKeywordRe = re(`^(universal shift|sing together|singer|shift|challenger|resist|boost)\s*\+?(\d+)(?:\s*\{i\})?`)
	plainKeywordRe  = re(`^(bodyguard|evasive|rush|ward|reckless|support|vanish|alert)\b`)
	keywordSepRe    = re(`^[\s,;.]+`)
)

// parseKeywords reads a line made only of keywords, such as "Evasive, Ward"
// or "Shift 5 {I}". Anything else left on the line rejects the whole line.
func parseKeywords(text string) []*ability.Definition {
	var defs []*ability.Definition
	rest := strings.TrimSpace(text)
	for rest != "" {
		var (
			kw    ability.Keyword
			value *int
			n     int
		)
		if m := valuedKeywordRe.FindStringSubmatch(rest); m != nil {
			kw = keywordNames[strings.ToLower(m[1])]
			value = ability.IntPtr(mustNumber(m[2]))
			n = len(m[0])
		} else if m := plainKeywordRe.FindStringSubmatch(rest); m != nil {
			kw = keywordNames[strings.ToLower(m[1])]
			n = len(m[0])
		} else {
			return nil
		}
		defs = append(defs, keywordDef(kw, value))
		rest = rest[n:]
		if sep := keywordSepRe.FindString(rest); sep != "" {
			rest = rest[len(sep):]
		}
	}
	return defs
}

func keywordDef(kw ability.Keyword, value *int) *ability.Definition {
	return &ability.Definition{
		Kind:         ability.Static,
		Keyword:      kw,
		KeywordValue: value,
		Effects:      []ability.Effect{ability.GrantKeyword{Keyword: kw, Value: value, Target: ability.Self{}}},
	}
}
