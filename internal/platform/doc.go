package platform

// Package platform contains filesystem glue: filename sanitizing, directory
// creation, and file size/removal helpers used by the download pipeline.
