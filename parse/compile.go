// Package parse compiles the rules text printed on cards into ability
// definitions. Each text is cleaned up, then offered to pattern tables in a
// fixed order: activated, triggered, keyword, static. Action cards get one
// more try as if the text followed "When you play this action,".
//
// Text nothing recognizes is dropped and reported through a MissRecorder.
package parse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SvenDH/inkwell/ability"
	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/observe"
)

// Miss is a piece of rules text the compiler did not understand.
type Miss struct {
	CardID   string
	CardName string
	CardType card.Type
	Text     string
}

type MissRecorder interface {
	RecordMiss(ctx context.Context, m Miss) error
}

var singRe = re(`^a character with cost (\d+|\w+) or more can \{e\} to sing this song for free\.?\s*(.*)$`)

type Compiler struct {
	log     *slog.Logger
	misses  MissRecorder
	metrics *observe.Metrics
}

type Option func(*Compiler)

func WithLogger(log *slog.Logger) Option {
	return func(c *Compiler) { c.log = log }
}

// WithMissRecorder reports every dropped text to r.
func WithMissRecorder(r MissRecorder) Option {
	return func(c *Compiler) { c.misses = r }
}

func WithMetrics(m *observe.Metrics) Option {
	return func(c *Compiler) { c.metrics = m }
}

func New(opts ...Option) *Compiler {
	c := &Compiler{log: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type source struct {
	text string
	name string
}

// Texts lists the rules texts of a card in compile order.
func Texts(c *card.Card) []string {
	var out []string
	for _, s := range sources(c) {
		out = append(out, s.text)
	}
	return out
}

func sources(c *card.Card) []source {
	var out []source
	for _, a := range c.Abilities {
		text := a.Effect
		if text == "" {
			text = a.FullText
		}
		if text == "" {
			text = a.Keyword
		}
		if text == "" {
			continue
		}
		if len(a.Costs) > 0 && !strings.Contains(text, "—") {
			text = strings.Join(a.Costs, ", ") + " — " + text
		}
		out = append(out, source{text: text, name: a.Name})
	}
	if len(out) > 0 {
		return out
	}
	for _, t := range c.TextSections {
		if strings.TrimSpace(t) != "" {
			out = append(out, source{text: t})
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, t := range strings.Split(c.Text, "\n") {
		if strings.TrimSpace(t) != "" {
			out = append(out, source{text: t})
		}
	}
	return out
}

// Compile compiles every rules text of c.
func (c *Compiler) Compile(ctx context.Context, cd *card.Card) []ability.Definition {
	return c.compile(ctx, cd, sources(cd))
}

// CompileTexts compiles the given texts as if they were printed on cd.
func (c *Compiler) CompileTexts(ctx context.Context, cd *card.Card, texts []string) []ability.Definition {
	srcs := make([]source, len(texts))
	for i, t := range texts {
		srcs[i] = source{text: t}
	}
	return c.compile(ctx, cd, srcs)
}

func (c *Compiler) compile(ctx context.Context, cd *card.Card, srcs []source) []ability.Definition {
	var out []ability.Definition
	for _, src := range srcs {
		for _, def := range c.compileText(ctx, cd, src) {
			def.ID = fmt.Sprintf("%s-%d", cd.ID, len(out))
			def.Name = src.name
			inferDuration(def)
			c.metrics.RecordCompiled(ctx, string(def.Kind))
			out = append(out, *def)
		}
	}
	return out
}

func (c *Compiler) compileText(ctx context.Context, cd *card.Card, src source) []*ability.Definition {
	text := preprocess(src.text, src.name)
	if text == "" {
		return nil
	}
	var defs []*ability.Definition
	if m := singRe.FindStringSubmatch(text); m != nil {
		def := static(ability.SingCost{Value: mustNumber(m[1])})
		def.Text = strings.TrimSpace(strings.TrimSuffix(text, m[2]))
		defs = append(defs, def)
		if text = strings.TrimSpace(m[2]); text == "" {
			return defs
		}
	}

	if found := c.cascade(cd, text); found != nil {
		return append(defs, found...)
	}
	if first, second, ok := splitCompound(text); ok {
		a, b := c.cascade(cd, first), c.cascade(cd, second)
		if len(a) > 0 && len(b) > 0 {
			return append(defs, a[0], b[0])
		}
	}

	c.log.Debug("rules text not recognized", "card", cd.ID, "text", text)
	c.metrics.RecordParseMiss(ctx, string(cd.Type))
	if c.misses != nil {
		miss := Miss{CardID: cd.ID, CardName: cd.FullName(), CardType: cd.Type, Text: text}
		if err := c.misses.RecordMiss(ctx, miss); err != nil {
			c.log.Warn("failed to record parse miss", "card", cd.ID, "err", err)
		}
	}
	return defs
}

// cascade offers text to each table in turn. The text of every returned
// definition is set.
func (c *Compiler) cascade(cd *card.Card, text string) []*ability.Definition {
	tag := func(defs ...*ability.Definition) []*ability.Definition {
		for _, d := range defs {
			d.Text = text
		}
		return defs
	}
	if def, name := activatedTable.match(cd, text); def != nil {
		c.log.Debug("compiled activated ability", "card", cd.ID, "pattern", name)
		return tag(def)
	}
	if def, name := triggeredTable.match(cd, text); def != nil {
		c.log.Debug("compiled triggered ability", "card", cd.ID, "pattern", name)
		return tag(def)
	}
	if defs := parseKeywords(text); len(defs) > 0 {
		return tag(defs...)
	}
	if def, name := staticTable.match(cd, text); def != nil {
		c.log.Debug("compiled static ability", "card", cd.ID, "pattern", name)
		return tag(def)
	}
	if cd.Type == card.TypeAction {
		if def, _ := triggeredTable.match(cd, "When you play this action, "+lowerFirst(text)); def != nil {
			return tag(def)
		}
	}
	return nil
}

// Tables exposes the pattern tables in cascade order, for inspection.
func Tables() map[string]Table {
	return map[string]Table{
		"activated": activatedTable,
		"triggered": triggeredTable,
		"static":    staticTable,
	}
}
