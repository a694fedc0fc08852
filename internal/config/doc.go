// Package config loads roster's startup configuration.
//
// # Resolution Order
//
// Load layers three sources, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. The TOML file at the given path, or ~/.config/roster/config.toml
//  3. ROSTER_* environment variables
//
// A missing config file is not an error. Blank values in the file or the
// environment leave the lower layer untouched.
//
// # Fields
//
//	api_base = "https://fsa-puppy-bowl.herokuapp.com/api"
//	cohort = "2501-ftb-et-web-pt"
//	log_path = "~/.local/state/roster/roster.log"
//	log_level = "info"
//	request_timeout = "10s"
//	discard_stale = true
//
// The matching environment variables are ROSTER_API_BASE, ROSTER_COHORT,
// ROSTER_LOG_PATH, ROSTER_LOG_LEVEL, ROSTER_REQUEST_TIMEOUT and
// ROSTER_DISCARD_STALE.
//
// cohort is the organizational segment every API path is scoped by.
// discard_stale controls whether an older refresh may overwrite the screen
// after a newer one has started (see package state).
//
// # Errors
//
// Load fails on unreadable files, TOML syntax errors, unparsable durations or
// booleans, and on a configuration Validate rejects (empty cohort,
// non-positive timeout).
package config
