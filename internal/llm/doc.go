// Package llm provides a minimal chat completion client for
// OpenRouter-compatible endpoints. Requests always demand JSON responses and
// transient failures are retried with exponential backoff.
package llm
