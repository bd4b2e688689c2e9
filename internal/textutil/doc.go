// Package textutil provides tokenization, keyword ranking, and truncation
// helpers used by the analysis fallback path and the normalizer.
package textutil
