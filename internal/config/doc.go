// Package config loads and validates application configuration from
// environment variables (CLIENTSURE_ prefix) and an optional config.yaml.
// Settings are grouped into logical structs; every field carries a default
// so the service runs with no configuration at all.
package config
