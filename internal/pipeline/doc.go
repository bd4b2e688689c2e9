// Package pipeline sequences the course generation stages: collect,
// normalize, analyze, synthesize, render. Stages run strictly in order with
// cancellation checked at stage boundaries, and every failure maps to one
// typed Error kind.
package pipeline
