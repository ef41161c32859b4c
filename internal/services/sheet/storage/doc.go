// Package storage defines persistence contracts for characters, their
// resources and the rolls made against them.
//
// The sheet service depends only on these interfaces so tests can run the
// engine against in-memory fakes.
package storage
