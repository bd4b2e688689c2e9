// Package render serializes a synthesized course model into its three
// externally visible formats: canonical JSON, a narrative Markdown document,
// and a self-contained HTML page embedding both. Rendering is deterministic
// and validates the course model contract first.
package render
