// Package config resolves the bridge's settings from the environment and an
// optional config file, validates them once at startup, and hands out a
// read-only Config. Keys are flat so that a Home Assistant add-on options
// file can be used as the config file without translation.
package config
