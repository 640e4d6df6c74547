package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	OwnerKeySalt string
	CodeLength   int
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("pollcast", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.CodeLength, "code-length", 0, "Join code length")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.OwnerKeySalt, "owner-salt", "", "Owner key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 5000 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:pollcast.db"
	}

	if cfg.CodeLength == 0 {
		if lenStr := os.Getenv("CODE_LENGTH"); lenStr != "" {
			n, err := strconv.Atoi(lenStr)
			if err != nil {
				return Config{}, errors.New("invalid CODE_LENGTH env variable")
			}
			cfg.CodeLength = n
		} else {
			cfg.CodeLength = 6
		}
	}
	if cfg.CodeLength < 4 || cfg.CodeLength > 12 {
		return Config{}, errors.New("code length must be between 4 and 12")
	}

	// Secrets - MUST be provided
	if cfg.OwnerKeySalt == "" {
		cfg.OwnerKeySalt = os.Getenv("OWNER_KEY_SALT")
	}
	if cfg.OwnerKeySalt == "" {
		return Config{}, errors.New("OWNER_KEY_SALT required")
	}

	return cfg, nil
}
