package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates all service configuration.
type Config struct {
	Server Server
	Chat   Chat
}

// Server describes the HTTP listener.
type Server struct {
	Addr string
}

// Chat tunes the simulated partner behaviour.
type Chat struct {
	// ThinkDelayMin/Max bound the artificial reply delay.
	ThinkDelayMin time.Duration
	ThinkDelayMax time.Duration
}

// Load reads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	server, err := loadServer()
	if err != nil {
		return nil, err
	}

	chat, err := loadChat()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Chat: chat}, nil
}

func loadServer() (Server, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return Server{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return Server{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return Server{Addr: ":" + port}, nil
}

func loadChat() (Chat, error) {
	minMS, err := loadMillis("THINK_DELAY_MIN_MS", 1000)
	if err != nil {
		return Chat{}, err
	}
	maxMS, err := loadMillis("THINK_DELAY_MAX_MS", 2000)
	if err != nil {
		return Chat{}, err
	}
	if maxMS < minMS {
		return Chat{}, fmt.Errorf("THINK_DELAY_MAX_MS (%d) must be >= THINK_DELAY_MIN_MS (%d)", maxMS, minMS)
	}

	return Chat{
		ThinkDelayMin: time.Duration(minMS) * time.Millisecond,
		ThinkDelayMax: time.Duration(maxMS) * time.Millisecond,
	}, nil
}

func loadMillis(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s value: %q", key, raw)
	}
	return value, nil
}
