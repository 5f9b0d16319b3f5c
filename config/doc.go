// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Command line flags override the values read here.
package config
