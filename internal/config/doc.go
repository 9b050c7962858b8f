// Package config loads node membership, hash and logging settings from
// YAML files and command-line peer lists.
package config
