// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and TASKS_-prefixed environment
// variables. It provides type-safe access to settings needed by the server,
// the storage layer and the token issuer while keeping configuration details
// separate from business logic.
package config
