package game

import (
	"context"
	"log"
	"time"

	"github.com/playmatatu/spinwheel/internal/wheel"
)

// SpinResult is the outcome of one spin
type SpinResult struct {
	Token     string        `json:"token"`
	Spin      int           `json:"spin"`
	Requested float64       `json:"requested_velocity"`
	Applied   float64       `json:"applied_velocity"`
	Steps     int           `json:"steps"`
	Rested    bool          `json:"rested"`
	Selected  bool          `json:"selected"`
	Pegs      wheel.PegPair `json:"pegs"`
	Prize     *Prize        `json:"prize,omitempty"`
	Ticks     int           `json:"ticks"`
	Receipt   string        `json:"receipt,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	SettledAt time.Time     `json:"settled_at"`
}

// PoseView is a body pose in viewport pixels and degrees
type PoseView struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Degrees float64 `json:"degrees"`
}

// Frame is the state of a spinning wheel after one simulation step
type Frame struct {
	Step            int      `json:"step"`
	Wheel           PoseView `json:"wheel"`
	Needle          PoseView `json:"needle"`
	AngularVelocity float64  `json:"angular_velocity"`
}

// FrameSink receives the progress of a live spin. Calls come from the
// spinning goroutine.
type FrameSink interface {
	Frame(token string, f Frame)
	Tick(token string, peg int)
	Result(token string, r *SpinResult)
}

func poseView(g wheel.Geometry, p wheel.Pose) PoseView {
	px := g.ToPixels(p.Position)
	return PoseView{X: px.X, Y: px.Y, Degrees: p.Degrees()}
}

func frameOf(w *wheel.Wheel, step int) Frame {
	g := w.Geometry()
	return Frame{
		Step:            step,
		Wheel:           poseView(g, w.WheelPose()),
		Needle:          poseView(g, w.NeedlePose()),
		AngularVelocity: w.AngularVelocity(),
	}
}

// beginSpin moves the session to StatusSpinning.
func (gm *SessionManager) beginSpin(token string) (*Session, error) {
	s, err := gm.GetSession(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.Status {
	case StatusSpinning:
		return nil, ErrSpinInProgress
	case StatusExpired:
		return nil, ErrSessionNotFound
	}
	s.Status = StatusSpinning
	s.LastActivity = time.Now()
	return s, nil
}

// Spin spins the wheel headless: it steps without pacing until the wheel rests
// or WHEEL_MAX_REST_STEPS is reached and returns the settled result.
func (gm *SessionManager) Spin(ctx context.Context, token string, omega float64) (*SpinResult, error) {
	s, err := gm.beginSpin(token)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	s.ticks = 0
	applied := s.wheel.Spin(omega)
	steps, rested := s.wheel.RunToRest(gm.config.MaxRestSteps)

	r := gm.settle(ctx, s, omega, applied, steps, rested, started)
	return r, nil
}

// SpinLive spins the wheel in real time, one step per TimeStep, reporting
// frames and peg ticks to sink. It returns the applied velocity once the spin
// has started; the result is delivered through sink.Result. Cancelling ctx
// stops the spin early.
func (gm *SessionManager) SpinLive(ctx context.Context, token string, omega float64, sink FrameSink) (float64, error) {
	s, err := gm.beginSpin(token)
	if err != nil {
		return 0, err
	}

	s.ticks = 0
	s.onTick = func(peg int) { sink.Tick(token, peg) }
	applied := s.wheel.Spin(omega)

	go func() {
		started := time.Now()
		steps, rested := gm.runPaced(ctx, s, sink)
		s.onTick = nil

		r := gm.settle(ctx, s, omega, applied, steps, rested, started)
		sink.Result(token, r)
	}()

	return applied, nil
}

func (gm *SessionManager) runPaced(ctx context.Context, s *Session, sink FrameSink) (int, bool) {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	steps := 0
	for steps < gm.config.MaxRestSteps && !s.wheel.IsAtRest() {
		select {
		case <-ctx.Done():
			log.Printf("[SPIN] Live spin of %s cancelled after %d steps", s.ID, steps)
			return steps, s.wheel.IsAtRest()
		case <-ticker.C:
		}
		s.wheel.Step()
		steps++
		sink.Frame(s.Token, frameOf(s.wheel, steps))
	}
	return steps, s.wheel.IsAtRest()
}

// settle records the outcome and returns the session to StatusSettled.
func (gm *SessionManager) settle(ctx context.Context, s *Session, requested, applied float64, steps int, rested bool, started time.Time) *SpinResult {
	pair, prize, selected := s.prizeFor()

	s.mu.Lock()
	s.Spins++
	r := &SpinResult{
		Token:     s.Token,
		Spin:      s.Spins,
		Requested: requested,
		Applied:   applied,
		Steps:     steps,
		Rested:    rested,
		Selected:  selected,
		Pegs:      pair,
		Prize:     prize,
		Ticks:     s.ticks,
		StartedAt: started,
		SettledAt: time.Now(),
	}
	if selected {
		receipt, err := SignReceipt(gm.config.ReceiptSecret, time.Duration(gm.config.ReceiptTTLMinutes)*time.Minute, r)
		if err != nil {
			log.Printf("[SPIN] Failed to sign receipt for %s spin %d: %v", s.ID, r.Spin, err)
		}
		r.Receipt = receipt
	}
	s.Last = r
	s.Status = StatusSettled
	s.LastActivity = r.SettledAt
	s.mu.Unlock()

	prizeName := "-"
	if prize != nil {
		prizeName = prize.Name
	}
	log.Printf("[SPIN] %s spin %d: omega=%.2f steps=%d rested=%v pegs=%s prize=%s", s.ID, r.Spin, applied, steps, rested, pair, prizeName)

	if err := gm.RecordSpin(r); err != nil {
		log.Printf("[DB] Failed to record spin %d of %s: %v", r.Spin, s.ID, err)
	}
	gm.cacheResult(context.WithoutCancel(ctx), r)
	return r
}
