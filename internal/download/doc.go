package download

// Package download implements the per-user download orchestration: link
// intake, format selection, the fetch → size check → upload cycle with
// throttled progress reporting, and guaranteed session/file cleanup.
// Network transfer and chat delivery are delegated to the Resolver, Fetcher
// and Messenger collaborators.
