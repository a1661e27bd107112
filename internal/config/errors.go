package config

import "errors"

var (
	// ErrNotFound is returned by Discover when no config file exists.
	ErrNotFound = errors.New("config not found")
	// ErrExists is returned when writing over an existing file without force.
	ErrExists = errors.New("config already exists")
	// ErrInvalid is matched by every *ConfigError.
	ErrInvalid = errors.New("invalid config")
)
