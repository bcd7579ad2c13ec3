// Package config manages user-level settings stored at ~/.typefill/config.yaml.
// Values resolve from TYPEFILL_* environment variables first, then the config
// file, then built-in defaults. A project's .env file can seed the environment.
package config
