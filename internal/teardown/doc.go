// Package teardown tears down a sandbox reservation.
//
// A [Coordinator] runs the teardown phases strictly in order:
//
//  1. fetch the reservation details
//  2. disconnect active routes
//  3. power off or delete the resources deployed by the reservation
//  4. clean up reservation connectivity
//  5. purge stored artifacts (optional)
//
// Progress is written to the reservation output so that users watching the
// sandbox see it, and logged through an [Observer].
//
// Resources are processed in parallel on a bounded worker pool. Status
// messages about powering off and deleting are published at most once per
// run, no matter how many resources are handled concurrently.
package teardown
