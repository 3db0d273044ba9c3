package teardown

import (
	"context"
	"fmt"
)

func (r *run) cleanupConnectivity(ctx context.Context) error {
	r.obs.Printf("Cleaning-up connectivity for reservation %s", r.reservationID)
	if err := r.write(ctx, MsgCleaningConnectivity); err != nil {
		return err
	}
	if err := r.api.CleanupSandboxConnectivity(ctx, r.reservationID); err != nil {
		return fmt.Errorf("failed to clean up connectivity: %w", err)
	}
	return nil
}
