package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/playmatatu/spinwheel/internal/models"
	wheelredis "github.com/playmatatu/spinwheel/internal/redis"
	"github.com/redis/go-redis/v9"
)

// Event is the payload published on the wheel events channel
type Event struct {
	Type   string      `json:"type"`
	Token  string      `json:"token"`
	Origin string      `json:"origin"`
	Result *SpinResult `json:"result,omitempty"`
}

func spinRecord(r *SpinResult) models.WheelSpin {
	rec := models.WheelSpin{
		SessionToken:      r.Token,
		SpinNumber:        r.Spin,
		RequestedVelocity: r.Requested,
		AppliedVelocity:   r.Applied,
		Steps:             r.Steps,
		Rested:            r.Rested,
		Ticks:             r.Ticks,
		StartedAt:         r.StartedAt,
		SettledAt:         r.SettledAt,
	}
	if r.Selected {
		rec.PegA = sql.NullInt64{Int64: int64(r.Pegs.A), Valid: true}
		rec.PegB = sql.NullInt64{Int64: int64(r.Pegs.B), Valid: true}
	}
	if r.Prize != nil {
		rec.Prize = sql.NullString{String: r.Prize.Name, Valid: true}
	}
	return rec
}

// RecordSpin appends a settled spin to wheel_spins
func (gm *SessionManager) RecordSpin(r *SpinResult) error {
	if gm.db == nil {
		return nil
	}

	_, err := gm.db.NamedExec(`INSERT INTO wheel_spins
		(session_token, spin_number, requested_velocity, applied_velocity, steps, rested, peg_a, peg_b, prize, ticks, started_at, settled_at)
		VALUES (:session_token, :spin_number, :requested_velocity, :applied_velocity, :steps, :rested, :peg_a, :peg_b, :prize, :ticks, :started_at, :settled_at)`,
		spinRecord(r))
	if err != nil {
		return fmt.Errorf("insert wheel_spins: %w", err)
	}
	return nil
}

// SpinHistory returns the most recent spins of a session, newest first
func (gm *SessionManager) SpinHistory(token string, limit int) ([]models.WheelSpin, error) {
	if gm.db == nil {
		return []models.WheelSpin{}, nil
	}

	spins := []models.WheelSpin{}
	err := gm.db.Select(&spins, `SELECT id, session_token, spin_number, requested_velocity, applied_velocity, steps, rested, peg_a, peg_b, prize, ticks, started_at, settled_at
		FROM wheel_spins WHERE session_token=$1 ORDER BY spin_number DESC LIMIT $2`, token, limit)
	if err != nil {
		return nil, fmt.Errorf("select wheel_spins: %w", err)
	}
	return spins, nil
}

// SavePrizeTable upserts the prize table of a session as JSONB
func (gm *SessionManager) SavePrizeTable(token string, pegs int, prizes []Prize, updatedBy string) error {
	if gm.db == nil {
		return nil
	}

	data, err := json.Marshal(prizes)
	if err != nil {
		return fmt.Errorf("marshal prizes: %w", err)
	}

	_, err = gm.db.Exec(`
		INSERT INTO wheel_prize_tables (session_token, pegs, prizes, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NOW(), NOW())
		ON CONFLICT (session_token) DO UPDATE SET
			pegs = EXCLUDED.pegs,
			prizes = EXCLUDED.prizes,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
	`, token, pegs, data, updatedBy)
	if err != nil {
		return fmt.Errorf("upsert wheel_prize_tables: %w", err)
	}
	return nil
}

// LoadPrizeTable reads the stored prize table of a session
func (gm *SessionManager) LoadPrizeTable(token string) (*models.PrizeTable, []Prize, error) {
	if gm.db == nil {
		return nil, nil, ErrSessionNotFound
	}

	var table models.PrizeTable
	err := gm.db.Get(&table, `SELECT session_token, pegs, prizes, updated_by, created_at, updated_at FROM wheel_prize_tables WHERE session_token=$1`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("select wheel_prize_tables: %w", err)
	}

	var prizes []Prize
	if err := json.Unmarshal(table.Prizes, &prizes); err != nil {
		return nil, nil, fmt.Errorf("decode prizes: %w", err)
	}
	return &table, prizes, nil
}

// cacheResult stores the result under the session's last-result key and
// announces it to other instances
func (gm *SessionManager) cacheResult(ctx context.Context, r *SpinResult) {
	if gm.rdb == nil {
		return
	}

	data, err := json.Marshal(r)
	if err != nil {
		log.Printf("[REDIS] Failed to marshal result for %s: %v", r.Token, err)
		return
	}

	ttl := time.Duration(gm.config.SessionExpiryMinutes) * time.Minute
	if err := gm.rdb.SetEx(ctx, wheelredis.LastResultKey(r.Token), data, ttl).Err(); err != nil {
		log.Printf("[REDIS] Failed to cache result for %s: %v", r.Token, err)
	}

	event, _ := json.Marshal(Event{Type: "result", Token: r.Token, Origin: gm.instanceID, Result: r})
	if err := gm.rdb.Publish(ctx, wheelredis.EventsChannel, event).Err(); err != nil {
		log.Printf("[REDIS] Failed to publish result for %s: %v", r.Token, err)
	}
}

func (gm *SessionManager) loadCachedResult(ctx context.Context, token string) (*SpinResult, error) {
	if gm.rdb == nil {
		return nil, ErrSessionNotFound
	}

	data, err := gm.rdb.Get(ctx, wheelredis.LastResultKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var r SpinResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	return &r, nil
}
