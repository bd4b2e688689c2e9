// Package cache stores analysis results in a local SQLite database keyed by
// content identity, so re-running the pipeline on unchanged playlists skips
// the external analysis call.
package cache
