package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// WheelSpin is one settled spin of a wheel session
type WheelSpin struct {
	ID                int            `db:"id" json:"id"`
	SessionToken      string         `db:"session_token" json:"session_token"`
	SpinNumber        int            `db:"spin_number" json:"spin_number"`
	RequestedVelocity float64        `db:"requested_velocity" json:"requested_velocity"`
	AppliedVelocity   float64        `db:"applied_velocity" json:"applied_velocity"`
	Steps             int            `db:"steps" json:"steps"`
	Rested            bool           `db:"rested" json:"rested"`
	PegA              sql.NullInt64  `db:"peg_a" json:"peg_a,omitempty"`
	PegB              sql.NullInt64  `db:"peg_b" json:"peg_b,omitempty"`
	Prize             sql.NullString `db:"prize" json:"prize,omitempty"`
	Ticks             int            `db:"ticks" json:"ticks"`
	StartedAt         time.Time      `db:"started_at" json:"started_at"`
	SettledAt         time.Time      `db:"settled_at" json:"settled_at"`
}

// PrizeTable is the prize layout attached to a session
type PrizeTable struct {
	SessionToken string          `db:"session_token" json:"session_token"`
	Pegs         int             `db:"pegs" json:"pegs"`
	Prizes       json.RawMessage `db:"prizes" json:"prizes"`
	UpdatedBy    sql.NullString  `db:"updated_by" json:"updated_by,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// AdminAudit is one entry of the admin audit log
type AdminAudit struct {
	ID        int             `db:"id" json:"id"`
	IP        string          `db:"ip" json:"ip"`
	Route     string          `db:"route" json:"route"`
	Action    string          `db:"action" json:"action"`
	Details   json.RawMessage `db:"details" json:"details"`
	Success   bool            `db:"success" json:"success"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
