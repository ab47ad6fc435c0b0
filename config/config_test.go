package config

import (
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.BoardSize != 6 {
		t.Errorf("expected BoardSize=6, got %d", cfg.BoardSize)
	}
	if cfg.InitialHP != 120 {
		t.Errorf("expected InitialHP=120, got %d", cfg.InitialHP)
	}
	if cfg.DeckSize != 20 {
		t.Errorf("expected DeckSize=20, got %d", cfg.DeckSize)
	}
	if cfg.MaxCopiesPerChar != 2 {
		t.Errorf("expected MaxCopiesPerChar=2, got %d", cfg.MaxCopiesPerChar)
	}
	if cfg.HandCapacity != 5 {
		t.Errorf("expected HandCapacity=5, got %d", cfg.HandCapacity)
	}
	if cfg.MaxNameLength != 24 {
		t.Errorf("expected MaxNameLength=24, got %d", cfg.MaxNameLength)
	}
	if cfg.WSPort != 8080 {
		t.Errorf("expected WSPort=8080, got %d", cfg.WSPort)
	}
	if cfg.BotPairTimeoutSec != 15 {
		t.Errorf("expected BotPairTimeoutSec=15, got %d", cfg.BotPairTimeoutSec)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	os.Setenv("BOARD_SIZE", "8")
	os.Setenv("INITIAL_HP", "200")
	os.Setenv("HAND_CAPACITY", "7")
	os.Setenv("WS_PORT", "9090")
	defer func() {
		os.Unsetenv("BOARD_SIZE")
		os.Unsetenv("INITIAL_HP")
		os.Unsetenv("HAND_CAPACITY")
		os.Unsetenv("WS_PORT")
	}()

	cfg := Load()

	if cfg.BoardSize != 8 {
		t.Errorf("expected BoardSize=8 after env override, got %d", cfg.BoardSize)
	}
	if cfg.InitialHP != 200 {
		t.Errorf("expected InitialHP=200 after env override, got %d", cfg.InitialHP)
	}
	if cfg.HandCapacity != 7 {
		t.Errorf("expected HandCapacity=7 after env override, got %d", cfg.HandCapacity)
	}
	if cfg.WSPort != 9090 {
		t.Errorf("expected WSPort=9090 after env override, got %d", cfg.WSPort)
	}
	// Non-overridden fields should remain default
	if cfg.DeckSize != 20 {
		t.Errorf("expected DeckSize=20 (default), got %d", cfg.DeckSize)
	}
}

func TestLoadWithInvalidEnv(t *testing.T) {
	os.Setenv("BOARD_SIZE", "invalid")
	defer os.Unsetenv("BOARD_SIZE")

	cfg := Load()

	// Invalid values fall back to the default
	if cfg.BoardSize != 6 {
		t.Errorf("expected BoardSize=6 with invalid env value, got %d", cfg.BoardSize)
	}
}
