package wheel

import "fmt"

// PegPair is an unordered pair of 1-based peg labels.
type PegPair struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Matches compares two pairs as sets.
func (p PegPair) Matches(o PegPair) bool {
	return (p.A == o.A && p.B == o.B) || (p.A == o.B && p.B == o.A)
}

// Normalized returns the pair with the smaller label first.
func (p PegPair) Normalized() PegPair {
	if p.A > p.B {
		return PegPair{A: p.B, B: p.A}
	}
	return p
}

func (p PegPair) String() string {
	return fmt.Sprintf("%d-%d", p.A, p.B)
}

// Selector tracks which two pegs bracket the needle. Only the most recent
// qualifying contact counts.
type Selector struct {
	pegs    int
	pair    PegPair
	settled bool
}

// NewSelector returns a selector for a wheel with pegs labeled 1..pegs.
func NewSelector(pegs int) *Selector {
	return &Selector{pegs: pegs}
}

// Release records that the needle stopped touching peg label while the wheel
// turned at angularVelocity. Labels outside [1, pegs] are ignored.
//
// Labels wrap within 1..N: going past N lands on 1 and going below 1 lands on N.
func (s *Selector) Release(label int, angularVelocity float64) {
	if label < 1 || label > s.pegs {
		return
	}

	var other int
	if angularVelocity <= 0 {
		other = label + 1
		if other > s.pegs {
			other = 1
		}
	} else {
		other = label - 1
		if other < 1 {
			other = s.pegs
		}
	}

	s.pair = PegPair{A: label, B: other}
	s.settled = true
}

// Pair returns the current pair; ok is false until the first release.
func (s *Selector) Pair() (PegPair, bool) {
	return s.pair, s.settled
}


// Element binds an application result to the pegs that bracket it.
type Element struct {
	Pegs   PegPair
	Result any
}

// Elements is the ordered lookup table from peg pairs to results.
type Elements []Element

func (e *Elements) Add(result any, pegs PegPair) {
	*e = append(*e, Element{Pegs: pegs, Result: result})
}

// Lookup returns the result of the first element whose pegs match pair.
func (e Elements) Lookup(pair PegPair) (any, bool) {
	for _, el := range e {
		if el.Pegs.Matches(pair) {
			return el.Result, true
		}
	}
	return nil, false
}
