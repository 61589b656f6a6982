package game

import (
	"sync"
	"time"

	"github.com/playmatatu/spinwheel/internal/wheel"
)

// Session is one wheel with its prize table. The wheel itself is only
// touched by the goroutine that moved the session to StatusSpinning, or
// under mu while the session is not spinning.
type Session struct {
	ID           string
	Token        string
	Status       SessionStatus
	Prizes       []Prize
	Spins        int
	Last         *SpinResult
	CreatedAt    time.Time
	LastActivity time.Time

	wheel  *wheel.Wheel
	ticks  int
	onTick func(peg int)
	mu     sync.Mutex
}

// SessionView is the JSON shape of a session
type SessionView struct {
	ID           string        `json:"id"`
	Token        string        `json:"token"`
	Status       SessionStatus `json:"status"`
	Wheel        wheel.Config  `json:"wheel"`
	Prizes       []Prize       `json:"prizes"`
	Spins        int           `json:"spins"`
	Last         *SpinResult   `json:"last_result,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	LastActivity time.Time     `json:"last_activity"`
}

func newSession(id, token string, cfg wheel.Config, prizes []Prize) *Session {
	now := time.Now()
	s := &Session{
		ID:           id,
		Token:        token,
		Status:       StatusIdle,
		Prizes:       append([]Prize(nil), prizes...),
		CreatedAt:    now,
		LastActivity: now,
	}
	s.wheel = wheel.New(cfg, wheel.WithContactObserver(s.observeContact))
	s.wheel.SetElements(elementsFor(s.Prizes))
	return s
}

// elementsFor maps every prize slice to its index in prizes.
func elementsFor(prizes []Prize) []wheel.Element {
	elements := make([]wheel.Element, 0, len(prizes))
	for i, p := range prizes {
		elements = append(elements, wheel.Element{
			Pegs:   wheel.PegPair{A: p.Pegs[0], B: p.Pegs[1]},
			Result: i,
		})
	}
	return elements
}

func (s *Session) observeContact(e wheel.ContactEvent) {
	if e.Phase != wheel.ContactBegin {
		return
	}
	peg, ok := e.Peg()
	if !ok {
		return
	}
	s.ticks++
	if s.onTick != nil {
		s.onTick(peg)
	}
}

// prizeFor returns the prize of the wheel's current selection.
func (s *Session) prizeFor() (wheel.PegPair, *Prize, bool) {
	pair, ok := s.wheel.Selection()
	if !ok {
		return wheel.PegPair{}, nil, false
	}
	res, ok := s.wheel.LuckyElement()
	if !ok {
		return pair, nil, true
	}
	idx, ok := res.(int)
	if !ok || idx < 0 || idx >= len(s.Prizes) {
		return pair, nil, true
	}
	p := s.Prizes[idx]
	return pair, &p, true
}

// View returns a copy of the session state safe to serialize.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := SessionView{
		ID:           s.ID,
		Token:        s.Token,
		Status:       s.Status,
		Prizes:       append([]Prize(nil), s.Prizes...),
		Spins:        s.Spins,
		Last:         s.Last,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
	}
	if s.wheel != nil {
		v.Wheel = s.wheel.Config()
	}
	return v
}

// dispose releases the wheel. Callers hold mu and the session is not spinning.
func (s *Session) dispose() {
	if s.wheel != nil {
		s.wheel.Dispose()
		s.wheel = nil
	}
	s.Status = StatusExpired
}
