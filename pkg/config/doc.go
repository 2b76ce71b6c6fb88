// Package config loads the backend configuration from an optional YAML file,
// a .env file and environment variables, in increasing order of precedence.
package config
