package wheel

// Step advances the simulation by one fixed TimeStep. Contact callbacks, and
// with them selection updates, run before Step returns.
func (w *Wheel) Step() {
	w.mustLive()
	w.stepper.Step(TimeStep, VelocityIterations, PositionIterations)
}

// RunToRest steps until the wheel is at rest or maxSteps steps were taken.
// It returns the number of steps taken and whether the wheel came to rest.
func (w *Wheel) RunToRest(maxSteps int) (int, bool) {
	w.mustLive()

	steps := 0
	for steps < maxSteps {
		if w.IsAtRest() {
			return steps, true
		}
		w.Step()
		steps++
	}
	return steps, w.IsAtRest()
}
