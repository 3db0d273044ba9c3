// Package s3 provides a client for S3-compatible object storage.
//
// The teardown uses it to purge the artifacts a reservation left behind
// (logs, snapshots, exported configs) under a per-reservation key prefix.
package s3
