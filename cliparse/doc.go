// Copyright (c) 2025 LiveTally Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (via godotenv);
real environment variables take precedence over file values, and CLI
flags take precedence over both.

# Config Fields

  - Port: Server listen port (default: 3419)
  - DatabaseURL: Connection string or sqlite file path (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - AddressSalt: Secret for address hash HMAC (required)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-address-salt  Address hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADDRESS_SALT  → -address-salt

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADDRESS_SALT must be provided
  - DATABASE_TYPE, when set, must be sqlite or postgres
*/
package cliparse
