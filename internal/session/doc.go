package session

// Package session owns the per-user session state: a concurrency-safe store
// keyed by user ID, plus a lifecycle manager enforcing expiry and the
// one-in-flight-task-per-user guarantee.
