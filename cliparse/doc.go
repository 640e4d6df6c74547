// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: Database connection string (defaults to file:pollcast.db
    for sqlite; required for postgres)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - OwnerKeySalt: Secret for owner key HMAC (required)
  - CodeLength: Join code length, 4-12 characters (default: 6)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-owner-salt   Owner key salt
	-code-length  Join code length

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	OWNER_KEY_SALT → -owner-salt
	CODE_LENGTH    → -code-length

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - OWNER_KEY_SALT must be provided
  - DATABASE_URL must be provided when the type is postgres
  - DATABASE_TYPE must be sqlite or postgres
  - CODE_LENGTH must be between 4 and 12

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("sqlite", cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(st, h, cfg)
*/
package cliparse
