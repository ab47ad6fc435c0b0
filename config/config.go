package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Config holds all configurable game parameters.
type Config struct {
	BoardSize         int `json:"board_size"`
	InitialHP         int `json:"initial_hp"`
	DeckSize          int `json:"deck_size"`
	MaxCopiesPerChar  int `json:"max_copies_per_char"`
	HandCapacity      int `json:"hand_capacity"`
	MaxNameLength     int `json:"max_name_length"`
	WSPort            int `json:"ws_port"`
	BotPairTimeoutSec int `json:"bot_pair_timeout_sec"`

	// DatabaseURL enables the optional match-history store when set.
	DatabaseURL string `json:"database_url"`

	// AuthJWKSBaseURL enables optional JWT identity when set; guests are
	// always accepted either way.
	AuthJWKSBaseURL string `json:"auth_jwks_base_url"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		BoardSize:         6,
		InitialHP:         120,
		DeckSize:          20,
		MaxCopiesPerChar:  2,
		HandCapacity:      5,
		MaxNameLength:     24,
		WSPort:            8080,
		BotPairTimeoutSec: 15,
	}
}

// Load reads configuration from an optional config.json file,
// then applies environment variable overrides. Fields not set
// in either source retain their default values.
func Load() *Config {
	cfg := Defaults()

	// Try to load from config.json
	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			log.Printf("Warning: failed to parse config.json: %v", err)
		}
	}

	// Environment variable overrides
	overrideInt(&cfg.BoardSize, "BOARD_SIZE")
	overrideInt(&cfg.InitialHP, "INITIAL_HP")
	overrideInt(&cfg.DeckSize, "DECK_SIZE")
	overrideInt(&cfg.MaxCopiesPerChar, "MAX_COPIES_PER_CHAR")
	overrideInt(&cfg.HandCapacity, "HAND_CAPACITY")
	overrideInt(&cfg.MaxNameLength, "MAX_NAME_LENGTH")
	overrideInt(&cfg.WSPort, "WS_PORT")
	overrideInt(&cfg.BotPairTimeoutSec, "BOT_PAIR_TIMEOUT_SEC")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.AuthJWKSBaseURL, "AUTH_JWKS_BASE_URL")

	return cfg
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
