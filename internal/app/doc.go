// Package app is roster's composition root.
//
// Run performs, in order:
//
//  1. Load configuration (package config) and apply the -cohort and -api
//     command-line overrides
//  2. Open the JSON diagnostics log (package logging)
//  3. Build the HTTP client for <api_base>/<cohort> (package roster)
//  4. Create the view store with the configured stale-result policy
//     (package state) and the controller on top of it
//  5. Load the saved theme (package prefs) and start the UI (package ui),
//     whose first command fetches and renders every player
//
// Run blocks until the user quits or the context is cancelled. Setup
// failures are returned before the terminal is taken over; request failures
// after that point only reach the log.
package app
