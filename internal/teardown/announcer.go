package teardown

import (
	"context"
	"sync"
)

// announcer publishes the power off and delete status messages at most once
// per run. Both flags are only read or written while holding mu, and mu is
// held across nothing but the message write.
type announcer struct {
	write func(ctx context.Context, message string) error

	mu                sync.Mutex
	powerOffAnnounced bool
	deleteAnnounced   bool
}

func newAnnouncer(write func(ctx context.Context, message string) error) *announcer {
	return &announcer{write: write}
}

// announceDelete reports that resources are being deleted. The first delete
// of a run that has not powered anything off yet also covers powering off.
func (a *announcer) announceDelete(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.deleteAnnounced {
		return nil
	}
	a.deleteAnnounced = true

	if !a.powerOffAnnounced {
		a.powerOffAnnounced = true
		return a.write(ctx, MsgPoweringOffAndDeleting)
	}
	return a.write(ctx, MsgDeleting)
}

// announcePowerOff reports that resources are powering off.
func (a *announcer) announcePowerOff(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.powerOffAnnounced {
		return nil
	}
	a.powerOffAnnounced = true
	return a.write(ctx, MsgPoweringOff)
}
