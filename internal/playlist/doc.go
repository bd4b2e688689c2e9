// Package playlist collects raw per-video records from a playlist provider
// and normalizes them into the ordered, availability-tagged item sequence the
// rest of the pipeline consumes.
package playlist
