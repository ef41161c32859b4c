// Package character orchestrates the roll and resource engines for one
// character sheet.
//
// The engines in internal/rules are pure; this package loads the current
// snapshot from storage, runs the engine, and writes the numeric results
// back. Every operation opens a trace span.
package character
