package teardown

import "time"

// Report summarizes a teardown run. It is filled in as far as the run got,
// so a failed run still reports the phases that completed.
type Report struct {
	ReservationID string

	// RoutesDisconnected counts the routes handed to the disconnect call.
	// It stays zero when the disconnect failed.
	RoutesDisconnected int

	PoweredOff        []string // Resources powered off and kept in the reservation
	MarkedForDeletion []string // Resources passed to the bulk removal
	Skipped           []string // Resources without a deployment, or with auto power off disabled
	Failed            []string // Resources whose power off or delete decision failed

	ArtifactsDeleted int

	// Warnings holds the tolerated errors reported to the reservation output.
	Warnings []string

	Phases   []PhaseResult
	Duration time.Duration
}

// PhaseResult records the outcome of one phase.
type PhaseResult struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Succeeded reports whether every phase that ran completed.
func (r *Report) Succeeded() bool {
	for _, p := range r.Phases {
		if p.Err != nil {
			return false
		}
	}
	return true
}
