package teardown

import (
	"context"
	"fmt"
)

// artifactKeyPrefix returns the key prefix holding the reservation's
// artifacts.
func (c *Coordinator) artifactKeyPrefix() string {
	return c.artifactPrefix + c.reservationID + "/"
}

// purgeArtifacts deletes the reservation's stored artifacts. It is best
// effort: failures are reported and never fail the run.
func (r *run) purgeArtifacts(ctx context.Context) error {
	prefix := r.artifactKeyPrefix()

	if r.artifactTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.artifactTimeout)
		defer cancel()
	}

	deleted, err := r.artifacts.PurgePrefix(ctx, r.artifactBucket, prefix)
	r.report.ArtifactsDeleted = deleted
	if err != nil {
		r.obs.Event(Event{
			Type:    EventArtifactsFailed,
			Phase:   PhaseArtifacts,
			Message: fmt.Sprintf("Error purging artifacts under s3://%s/%s", r.artifactBucket, prefix),
			Err:     err,
		})
		r.reportWarning(context.WithoutCancel(ctx), fmt.Sprintf(MsgArtifactsErrorFormat, err))
		return nil
	}

	r.obs.Printf("Purged %d artifacts under s3://%s/%s", deleted, r.artifactBucket, prefix)
	return nil
}
