package game

// SessionStatus represents the lifecycle of a wheel session
type SessionStatus string

const (
	StatusIdle     SessionStatus = "IDLE"
	StatusSpinning SessionStatus = "SPINNING"
	StatusSettled  SessionStatus = "SETTLED"
	StatusExpired  SessionStatus = "EXPIRED"
)
