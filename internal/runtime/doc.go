// Package runtime evaluates resolved programs.
//
// A Program is immutable and shared. Each Session owns one EvalContext and the
// memo of every cache node, and must be used by one goroutine at a time.
// EvaluateGrid runs one session per column over a worker pool.
package runtime
