package resolver

// Package resolver backs the metadata and byte-transfer collaborators with
// the YouTube innertube API via github.com/kkdai/youtube/v2.
