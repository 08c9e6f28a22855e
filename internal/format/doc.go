package format

// Package format turns raw resolver format descriptors into the
// deduplicated, human-labeled list of quality options offered to the user.
