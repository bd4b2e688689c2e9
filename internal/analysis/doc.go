// Package analysis wraps the generative model call that classifies playlist
// content. Model output is validated against a fixed schema, retried once on
// malformed payloads, and replaced by a heuristic fallback when the model is
// unreachable, so callers always receive a fully populated result.
package analysis
