package orchestration

import (
	"context"

	"github.com/go-logr/logr"
)

// DryRunClient passes reads through to the wrapped API and turns every
// mutating call into a logged no-op.
type DryRunClient struct {
	inner API
	log   logr.Logger
}

// NewDryRunClient wraps inner so that nothing is changed on the server.
func NewDryRunClient(inner API, log logr.Logger) *DryRunClient {
	return &DryRunClient{inner: inner, log: log.WithValues("dryRun", true)}
}

// GetReservationDetails implements ReservationReader.
func (d *DryRunClient) GetReservationDetails(ctx context.Context, reservationID string) (*ReservationDetails, error) {
	return d.inner.GetReservationDetails(ctx, reservationID)
}

// GetResourceDetails implements ResourceManager.
func (d *DryRunClient) GetResourceDetails(ctx context.Context, resourceName string) (*ResourceInfo, error) {
	return d.inner.GetResourceDetails(ctx, resourceName)
}

// WriteMessageToReservationOutput implements OutputWriter.
func (d *DryRunClient) WriteMessageToReservationOutput(_ context.Context, reservationID, message string) error {
	d.log.Info("would write reservation output", "reservation", reservationID, "message", message)
	return nil
}

// DisconnectRoutesInReservation implements RouteManager.
func (d *DryRunClient) DisconnectRoutesInReservation(_ context.Context, reservationID string, endpoints []string) error {
	d.log.Info("would disconnect routes", "reservation", reservationID, "endpoints", endpoints)
	return nil
}

// ExecuteResourceConnectedCommand implements ResourceManager.
func (d *DryRunClient) ExecuteResourceConnectedCommand(_ context.Context, reservationID, resourceName, commandName, commandTag string) error {
	d.log.Info("would execute connected command",
		"reservation", reservationID, "resource", resourceName, "command", commandName, "tag", commandTag)
	return nil
}

// RemoveResourcesFromReservation implements ResourceManager.
func (d *DryRunClient) RemoveResourcesFromReservation(_ context.Context, reservationID string, resourceNames []string) error {
	d.log.Info("would remove resources", "reservation", reservationID, "resources", resourceNames)
	return nil
}

// CleanupSandboxConnectivity implements ConnectivityManager.
func (d *DryRunClient) CleanupSandboxConnectivity(_ context.Context, reservationID string) error {
	d.log.Info("would cleanup connectivity", "reservation", reservationID)
	return nil
}

var _ API = (*DryRunClient)(nil)
