package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"WHEEL_PEGS", "WHEEL_DIAMETER", "MIGRATE_ON_START", "APP_PORT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.WheelPegs != 12 {
		t.Errorf("WheelPegs = %d, want 12", cfg.WheelPegs)
	}
	if cfg.WheelDiameter != 512 {
		t.Errorf("WheelDiameter = %v, want 512", cfg.WheelDiameter)
	}
	if cfg.MigrateOnStart {
		t.Error("MigrateOnStart should default to false")
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WHEEL_PEGS", "24")
	t.Setenv("WHEEL_DIAMETER", "300.5")
	t.Setenv("WHEEL_MAX_REST_STEPS", "not-a-number")
	t.Setenv("MIGRATE_ON_START", "true")

	cfg := Load()
	if cfg.WheelPegs != 24 {
		t.Errorf("WheelPegs = %d, want 24", cfg.WheelPegs)
	}
	if cfg.WheelDiameter != 300.5 {
		t.Errorf("WheelDiameter = %v, want 300.5", cfg.WheelDiameter)
	}
	if cfg.MaxRestSteps != 36000 {
		t.Errorf("MaxRestSteps = %d, want default 36000", cfg.MaxRestSteps)
	}
	if !cfg.MigrateOnStart {
		t.Error("MigrateOnStart not read")
	}
}
