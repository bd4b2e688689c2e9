// Package main hosts the coursegen CLI entrypoint and command graph.
//
// The Cobra-based command tree wires configuration resolution, structured
// logging setup, and the generation pipeline into user-facing commands for
// course generation, cache maintenance, and configuration scaffolding.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
