// Package synthesis turns a normalized item sequence and its analysis result
// into a course model. Two strategies share one partitioning step: the
// standard strategy emits item-referencing modules, the enhanced strategy
// emits lesson sequences with quizzes, assignments, and a final exam. Both
// are deterministic for fixed inputs.
package synthesis
