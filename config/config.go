package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"git-wait/log"
)

const (
	ConfigFileName = "config.json"

	// TimeoutEnvVar overrides the configured wait timeout, in milliseconds.
	// Unset means the config file (or its default of no timeout) applies.
	TimeoutEnvVar = "GIT_WAIT_TIMEOUT_MS"

	defaultProgram = "git"
)

// GetConfigDir returns the path to the wrapper's configuration directory.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".git-wait"), nil
}

// Config represents the wrapper configuration.
type Config struct {
	// DefaultProgram is the program control is handed off to.
	DefaultProgram string `json:"default_program"`
	// DefaultTimeoutMS bounds the wait in milliseconds when the timeout
	// environment variable is unset. Zero means wait indefinitely.
	DefaultTimeoutMS int `json:"default_timeout_ms"`
	// Quiet suppresses the waiting indicator on stdout.
	Quiet bool `json:"quiet"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultProgram:   defaultProgram,
		DefaultTimeoutMS: 0,
		Quiet:            false,
	}
}

// ResolveTimeout returns the effective wait timeout. The environment
// variable wins over the config file; zero means no timeout. A malformed or
// negative value is a fatal configuration error — it must not be mistaken
// for "wait forever".
func (c *Config) ResolveTimeout() (time.Duration, error) {
	raw, ok := os.LookupEnv(TimeoutEnvVar)
	if !ok {
		return time.Duration(c.DefaultTimeoutMS) * time.Millisecond, nil
	}

	ms, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("timeout parse error: %s=%q is not an integer", TimeoutEnvVar, raw)
	}
	if ms < 0 {
		return 0, fmt.Errorf("timeout parse error: %s=%q must be non-negative", TimeoutEnvVar, raw)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// LoadConfig loads the configuration, creating a default one on first run.
// Concurrent wrapper invocations are the normal case here, so the first-run
// write is guarded by a file lock.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to read config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file at %s: %v", configPath, err)

		// Back up the corrupted config before falling back to defaults.
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}

	if config.DefaultProgram == "" {
		config.DefaultProgram = defaultProgram
	}

	return &config
}

// saveConfig saves the configuration to disk under the config file lock.
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	lock := NewFileLock(configPath)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.WarningLog.Printf("failed to release config lock: %v", err)
		}
	}()

	// Another invocation may have won the race while we waited on the lock.
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages.
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
