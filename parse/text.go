package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	reminderRe = regexp.MustCompile(`\s*\(([^()]*)\)`)
	spaceRe    = regexp.MustCompile(`\s+`)
	dashRe     = regexp.MustCompile(`\s+[-–—]\s+`)
	compoundRe = regexp.MustCompile(`(?i)^(when(?:ever)? [^,]+?) and (whenever [^,]+), (.+)$`)
)

// flavorNames are ability names the rule-start heuristic cannot find,
// usually because they contain a rule-start word themselves.
var flavorNames = []string{
	"WHEN YOU WISH UPON A STAR",
	"YOU'RE A WIZARD",
	"DRAW YOUR SWORD",
	"YOUR MOVE",
	"EACH ONE OF YOU",
	"WHILE YOU WERE OUT",
	"THIS IS MY HOUSE",
	"IF IT FITS",
}

// ruleStarts begin the operative part of an ability text.
var ruleStarts = []string{
	"when ", "whenever ", "at the start ", "at the end ", "during ", "while ",
	"once per turn", "once during ", "{e}", "your ", "each player", "each opponent",
	"this character", "this item", "this location", "if ", "you ", "opponents ",
	"opposing ", "characters ", "chosen ", "banish ",
}

// actionVerbs start action card effects. Texts beginning with one have no
// flavor name.
var actionVerbs = []string{
	"banish", "deal", "draw", "return", "ready", "exert", "gain", "lose", "look",
	"search", "put", "remove", "shuffle", "play", "discard", "reveal", "choose",
	"move", "each", "chosen", "you", "your", "all", "sing",
}

// preprocess strips reminder text and the flavor name and normalizes
// spacing. known lists exact flavor names to try first, typically the name
// field of the ability entry.
func preprocess(text string, known ...string) string {
	text = stripReminders(text)
	text = normalize(text)
	return stripFlavorName(text, known...)
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "’", "'")
	text = spaceRe.ReplaceAllString(text, " ")
	text = dashRe.ReplaceAllString(text, " — ")
	return strings.TrimSpace(text)
}

// stripReminders drops parenthesized reminder text. A reminder that tells
// how to sing the song holds the rule itself and is kept without the
// parentheses.
func stripReminders(text string) string {
	return reminderRe.ReplaceAllStringFunc(text, func(m string) string {
		inner := reminderRe.FindStringSubmatch(m)[1]
		if strings.Contains(strings.ToLower(inner), "sing this song") {
			return " " + inner
		}
		return ""
	})
}

func stripFlavorName(text string, known ...string) string {
	lower := strings.ToLower(text)
	for _, names := range [][]string{known, flavorNames} {
		for _, name := range names {
			if name == "" {
				continue
			}
			if n := len(name); len(text) > n && strings.EqualFold(text[:n], name) {
				return strings.TrimLeft(text[n:], " :")
			}
		}
	}
	for _, v := range actionVerbs {
		if strings.HasPrefix(lower, v+" ") || lower == v {
			return text
		}
	}
	for _, tok := range ruleStarts {
		if strings.HasPrefix(lower, tok) {
			return text
		}
	}
	start := -1
	for _, tok := range ruleStarts {
		if i := indexWord(lower, tok); i > 0 && (start < 0 || i < start) {
			start = i
		}
	}
	if start < 0 || !looksLikeName(text[:start]) {
		return text
	}
	return text[start:]
}

// indexWord finds tok at a word boundary.
func indexWord(s, tok string) int {
	for off := 0; off < len(s); {
		i := strings.Index(s[off:], tok)
		if i < 0 {
			return -1
		}
		i += off
		if i == 0 || s[i-1] == ' ' {
			return i
		}
		off = i + 1
	}
	return -1
}

// looksLikeName accepts Title Case or upper case words, the way flavor
// names are printed.
func looksLikeName(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// splitCompound splits "When A and whenever B, EFFECT" into two texts that
// share the effect.
func splitCompound(text string) (string, string, bool) {
	m := compoundRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1] + ", " + m[3], capitalize(m[2]) + ", " + m[3], true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

var numberWords = map[string]int{
	"a":       1,
	"an":      1,
	"one":     1,
	"another": 1,
	"two":     2,
	"three":   3,
	"four":    4,
	"five":    5,
	"six":     6,
	"seven":   7,
	"eight":   8,
	"nine":    9,
	"ten":     10,
}

// number reads "3", "three" or "a".
func number(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, ok := numberWords[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, "+"))
	return n, err == nil
}

func mustNumber(s string) int {
	n, _ := number(s)
	return n
}

// sentences splits text on sentence ends that are not inside a symbol.
func sentences(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ". ") {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "."))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
