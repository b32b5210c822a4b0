package coverage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/SvenDH/inkwell/card"
	"github.com/SvenDH/inkwell/parse"
)

// Report summarizes how much of a catalog compiled.
type Report struct {
	Cards     int
	Texts     int
	Abilities int
	Misses    int
	ByType    map[card.Type]int
	Top       []Entry
}

// Coverage is the share of texts that compiled, between 0 and 1.
func (r Report) Coverage() float64 {
	if r.Texts == 0 {
		return 1
	}
	return float64(r.Texts-r.Misses) / float64(r.Texts)
}

// Measure compiles every card with comp and reports the misses stored in
// repo. comp is expected to record its misses into repo. The repo is reset
// first so the report only covers this run.
func Measure(ctx context.Context, comp *parse.Compiler, repo Repo, cards []*card.Card, top int) (Report, error) {
	if err := repo.Reset(ctx); err != nil {
		return Report{}, err
	}
	r := Report{Cards: len(cards), ByType: map[card.Type]int{}}
	for _, c := range cards {
		r.Texts += len(parse.Texts(c))
		r.Abilities += len(comp.Compile(ctx, c))
	}
	entries, err := repo.Misses(ctx)
	if err != nil {
		return Report{}, err
	}
	for _, e := range entries {
		r.Misses += e.Count
		r.ByType[e.CardType] += e.Count
	}
	if top > 0 && len(entries) > top {
		entries = entries[:top]
	}
	r.Top = entries
	return r, nil
}

// Write prints the report as plain text.
func (r Report) Write(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "cards: %d\ntexts: %d\nabilities: %d\nmisses: %d\ncoverage: %.1f%%\n",
		r.Cards, r.Texts, r.Abilities, r.Misses, 100*r.Coverage())
	types := make([]string, 0, len(r.ByType))
	for t := range r.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(&b, "  %s: %d\n", t, r.ByType[card.Type(t)])
	}
	for _, e := range r.Top {
		fmt.Fprintf(&b, "%4d  %s  %q\n", e.Count, e.CardName, e.Text)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
