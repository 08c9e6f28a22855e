package model

// Package model defines domain data structures shared across the bot:
// per-user sessions, selectable format options, download tasks, progress
// snapshots, and status enums with explicit state transitions.
