package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/spinwheel/internal/config"
	"github.com/playmatatu/spinwheel/internal/wheel"
	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSpinInProgress  = errors.New("spin in progress")
)

// SessionManager owns every live wheel session
type SessionManager struct {
	sessions   map[string]*Session // keyed by token
	instanceID string
	rdb        *redis.Client // nil disables caching and pub/sub
	db         *sqlx.DB      // nil disables the spin log
	config     *config.Config
	mu         sync.RWMutex
}

var (
	// Global session manager instance
	Manager *SessionManager
)

// InitializeManager initializes the global session manager and starts its
// background jobs
func InitializeManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	Manager = NewSessionManager(db, rdb, cfg)
	go Manager.StartExpiryChecker()
}

// NewSessionManager creates a new session manager. db and rdb may be nil.
func NewSessionManager(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) *SessionManager {
	return &SessionManager{
		sessions:   make(map[string]*Session),
		instanceID: generateToken(4),
		rdb:        rdb,
		db:         db,
		config:     cfg,
	}
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func (gm *SessionManager) GetConfig() *config.Config {
	return gm.config
}

// InstanceID identifies this process in published events.
func (gm *SessionManager) InstanceID() string {
	return gm.instanceID
}

// WheelConfig places a configured wheel in the middle of the viewport.
func WheelConfig(cfg *config.Config) wheel.Config {
	return wheel.Config{
		ViewportWidth:  cfg.ViewportWidth,
		ViewportHeight: cfg.ViewportHeight,
		Diameter:       cfg.WheelDiameter,
		X:              cfg.ViewportWidth / 2,
		Y:              cfg.ViewportHeight / 2,
		Pegs:           cfg.WheelPegs,
	}
}

// CreateSession builds a new wheel. A nil prizes slice uses DefaultPrizes.
func (gm *SessionManager) CreateSession(prizes []Prize) (*Session, error) {
	pegs := gm.config.WheelPegs
	if prizes == nil {
		prizes = DefaultPrizes(pegs)
	}
	if err := ValidatePrizes(pegs, prizes); err != nil {
		return nil, err
	}

	s := newSession("wheel_"+generateToken(8), generateToken(16), WheelConfig(gm.config), prizes)

	gm.mu.Lock()
	gm.sessions[s.Token] = s
	gm.mu.Unlock()

	log.Printf("[WHEEL] Session created: %s (pegs=%d, diameter=%.0f)", s.ID, pegs, gm.config.WheelDiameter)

	if err := gm.SavePrizeTable(s.Token, pegs, prizes, ""); err != nil {
		log.Printf("[DB] Failed to save prize table for %s: %v", s.ID, err)
	}
	return s, nil
}

// GetSession returns the live session for token
func (gm *SessionManager) GetSession(token string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, ok := gm.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// EndSession disposes the wheel and forgets the session
func (gm *SessionManager) EndSession(token string) error {
	s, err := gm.GetSession(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.Status == StatusSpinning {
		s.mu.Unlock()
		return ErrSpinInProgress
	}
	s.dispose()
	s.mu.Unlock()

	gm.mu.Lock()
	delete(gm.sessions, token)
	gm.mu.Unlock()

	log.Printf("[WHEEL] Session ended: %s", s.ID)
	return nil
}

// SetPrizes replaces the prize table of an idle or settled session.
func (gm *SessionManager) SetPrizes(token string, prizes []Prize, updatedBy string) error {
	s, err := gm.GetSession(token)
	if err != nil {
		return err
	}
	if err := ValidatePrizes(gm.config.WheelPegs, prizes); err != nil {
		return err
	}

	s.mu.Lock()
	switch s.Status {
	case StatusSpinning:
		s.mu.Unlock()
		return ErrSpinInProgress
	case StatusExpired:
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	s.Prizes = append([]Prize(nil), prizes...)
	s.wheel.SetElements(elementsFor(s.Prizes))
	s.LastActivity = time.Now()
	s.mu.Unlock()

	log.Printf("[ADMIN] Prize table replaced for %s by %q", s.ID, updatedBy)
	return gm.SavePrizeTable(token, gm.config.WheelPegs, prizes, updatedBy)
}

// LastResult returns the latest spin result of a session, from memory when
// the session lives here and from redis otherwise.
func (gm *SessionManager) LastResult(ctx context.Context, token string) (*SpinResult, error) {
	if s, err := gm.GetSession(token); err == nil {
		s.mu.Lock()
		last := s.Last
		s.mu.Unlock()
		if last != nil {
			return last, nil
		}
	}
	return gm.loadCachedResult(ctx, token)
}

// ActiveSessionCount returns the number of sessions held in memory
func (gm *SessionManager) ActiveSessionCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.sessions)
}

// StartExpiryChecker runs a background job to dispose idle sessions
func (gm *SessionManager) StartExpiryChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if n := gm.checkExpiredSessions(time.Now()); n > 0 {
			log.Printf("[EXPIRY] Disposed %d idle sessions", n)
		}
	}
}

// checkExpiredSessions disposes sessions idle for longer than the configured
// expiry. Spinning sessions are never expired.
func (gm *SessionManager) checkExpiredSessions(now time.Time) int {
	expiry := time.Duration(gm.config.SessionExpiryMinutes) * time.Minute

	gm.mu.RLock()
	var candidates []*Session
	for _, s := range gm.sessions {
		candidates = append(candidates, s)
	}
	gm.mu.RUnlock()

	var expired []string
	for _, s := range candidates {
		s.mu.Lock()
		if s.Status != StatusSpinning && now.Sub(s.LastActivity) > expiry {
			s.dispose()
			expired = append(expired, s.Token)
		}
		s.mu.Unlock()
	}

	if len(expired) == 0 {
		return 0
	}

	gm.mu.Lock()
	for _, token := range expired {
		delete(gm.sessions, token)
	}
	gm.mu.Unlock()
	return len(expired)
}
