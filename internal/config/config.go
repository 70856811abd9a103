package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

var ErrMissing = errors.New("required setting is not set")

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string
	LogLevel      string

	// PasswordHash is the bcrypt hash of the shared access password.
	PasswordHash []byte

	Divisions Divisions
}

// Divisions is the optional YAML file named by PROGRESS_CONFIG.
type Divisions struct {
	Sections      []string `yaml:"sections" json:"sections"`
	HandoverYears []string `yaml:"handover_years" json:"handover_years"`
}

var defaultDivisions = Divisions{
	Sections:      []string{"主要工程", "偉鴻", "材料案"},
	HandoverYears: []string{"114", "115", "116"},
}

// HasSection reports whether s is a configured section. An empty section is
// accepted so rows can be created before they are sorted.
func (d Divisions) HasSection(s string) bool {
	if s == "" || len(d.Sections) == 0 {
		return true
	}
	for _, v := range d.Sections {
		if v == s {
			return true
		}
	}
	return false
}

// Load reads .env (if present) and the environment. Database settings are
// only needed by commands that open the database; see RequireDB.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		Divisions:     defaultDivisions,
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if path := os.Getenv("PROGRESS_CONFIG"); path != "" {
		d, err := LoadDivisions(path)
		if err != nil {
			return nil, err
		}
		cfg.Divisions = d
	}

	return cfg, nil
}

// RequireDB checks the database DSN.
func (c *Config) RequireDB() error {
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN: %w", ErrMissing)
	}
	return nil
}

// RequireServer checks the settings the HTTP server needs and prepares the
// password hash. ACCESS_PASSWORD_HASH wins over ACCESS_PASSWORD.
func (c *Config) RequireServer() error {
	if err := c.RequireDB(); err != nil {
		return err
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET: %w", ErrMissing)
	}

	if h := os.Getenv("ACCESS_PASSWORD_HASH"); h != "" {
		c.PasswordHash = []byte(h)
		return nil
	}
	pw := os.Getenv("ACCESS_PASSWORD")
	if pw == "" {
		return fmt.Errorf("ACCESS_PASSWORD or ACCESS_PASSWORD_HASH: %w", ErrMissing)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash access password: %w", err)
	}
	c.PasswordHash = hash
	return nil
}

func LoadDivisions(path string) (Divisions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Divisions{}, fmt.Errorf("read divisions file: %w", err)
	}
	var d Divisions
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Divisions{}, fmt.Errorf("parse divisions file %s: %w", path, err)
	}
	if len(d.Sections) == 0 {
		d.Sections = defaultDivisions.Sections
	}
	if len(d.HandoverYears) == 0 {
		d.HandoverYears = defaultDivisions.HandoverYears
	}
	return d, nil
}
