package game

import "math/rand"

// Pile is an ordered zone. The top of the pile is the last element, so
// drawing pops from the end.
type Pile struct {
	cards []*Card
}

func (p *Pile) Len() int { return len(p.cards) }

// Cards returns the pile bottom-first. The slice is shared; callers must not
// mutate it.
func (p *Pile) Cards() []*Card { return p.cards }

// Add puts cards on top, in order, so the last argument ends up on top.
func (p *Pile) Add(cards ...*Card) { p.cards = append(p.cards, cards...) }

func (p *Pile) AddBottom(card *Card) {
	p.cards = append([]*Card{card}, p.cards...)
}

func (p *Pile) Remove(card *Card) bool {
	for i, c := range p.cards {
		if c == card {
			p.cards = append(p.cards[:i], p.cards[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Pile) Contains(card *Card) bool {
	for _, c := range p.cards {
		if c == card {
			return true
		}
	}
	return false
}

func (p *Pile) Pop() *Card {
	if len(p.cards) == 0 {
		return nil
	}
	card := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return card
}

// Top returns up to n cards from the top, top card first.
func (p *Pile) Top(n int) []*Card {
	if n > len(p.cards) {
		n = len(p.cards)
	}
	top := make([]*Card, 0, n)
	for i := len(p.cards) - 1; i >= len(p.cards)-n; i-- {
		top = append(top, p.cards[i])
	}
	return top
}

// Shuffle is a Fisher-Yates shuffle driven by r.
func (p *Pile) Shuffle(r *rand.Rand) {
	for i := len(p.cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	}
}

// Insert places card at index i counted from the bottom. A negative index
// puts it on top.
func (p *Pile) Insert(card *Card, i int) {
	if i < 0 || i >= len(p.cards) {
		p.cards = append(p.cards, card)
	} else {
		p.cards = append(p.cards[:i], append([]*Card{card}, p.cards[i:]...)...)
	}
}

// Set replaces the pile contents, bottom-first.
func (p *Pile) Set(cards []*Card) {
	p.cards = append(p.cards[:0:0], cards...)
}
