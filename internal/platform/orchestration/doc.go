// Package orchestration provides a client for the lab orchestration API.
//
// # Architecture
//
// The package is organized into small modules:
//
//   - client.go: interfaces grouping the API operations the teardown uses
//   - types.go: reservation, connector and resource records returned by the API
//   - real_client.go: JSON-over-HTTP implementation of [API]
//   - errors.go: structured API errors and error-code classification
//   - helpers.go: collaborator helpers (resource filtering, custom parameters)
//   - dryrun.go: decorator that turns every mutating call into a logged no-op
//   - metrics.go: per-operation call counters and latency histograms
//   - mock.go: function-field mock used by tests across the module
//
// # Error Codes
//
// The API reports failures as a JSON body carrying a machine-readable code.
// Two codes matter to teardown:
//
//   - "123": the route to disconnect does not exist (already disconnected)
//   - "153": a deployed resource could not be removed from the reservation
//
// Use [IsConnectionNotFound] and [IsRemoveDeployedResource] rather than
// comparing codes directly.
//
// # Example Usage
//
//	client := orchestration.NewRealClient(orchestration.Options{
//	    BaseURL: "https://lab.example.com",
//	    Token:   token,
//	    Domain:  "Global",
//	})
//
//	details, err := client.GetReservationDetails(ctx, reservationID)
package orchestration
