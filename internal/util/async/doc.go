// Package async provides utilities for parallel task execution.
//
// The [Map] function fans a slice out over a bounded pool of goroutines
// and collects the results in input order. Teardown uses it to act on every
// deployed resource of a reservation at once.
package async
