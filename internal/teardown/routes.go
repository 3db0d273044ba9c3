package teardown

import (
	"context"
	"fmt"

	"github.com/imamik/sandbox-teardown/internal/platform/orchestration"
)

// routeEndpoints returns the target and source of every active connector
// that has both, in that order.
func routeEndpoints(details *orchestration.ReservationDetails) []string {
	if details == nil {
		return nil
	}

	var endpoints []string
	for _, conn := range details.ReservationDescription.Connectors {
		if !conn.State.IsActive() || conn.Source == "" || conn.Target == "" {
			continue
		}
		endpoints = append(endpoints, conn.Target, conn.Source)
	}
	return endpoints
}

// disconnectRoutes disconnects every active route with a single call.
// It never fails: a connection that is already gone is ignored and any other
// error is logged and reported to the reservation output.
func (r *run) disconnectRoutes(ctx context.Context) error {
	endpoints := routeEndpoints(r.details)
	if len(endpoints) == 0 {
		r.obs.Printf("No routes to disconnect for reservation %s", r.reservationID)
		return nil
	}

	err := r.sendDisconnect(ctx, endpoints)
	switch {
	case err == nil:
		r.report.RoutesDisconnected = len(endpoints) / 2
	case orchestration.IsConnectionNotFound(err):
		r.obs.Printf("Routes in reservation %s are already disconnected", r.reservationID)
	default:
		r.obs.Event(Event{
			Type:    EventRoutesFailed,
			Phase:   PhaseRoutes,
			Message: fmt.Sprintf("Error disconnecting all routes in reservation %s", r.reservationID),
			Err:     err,
		})
		r.reportWarning(ctx, fmt.Sprintf(MsgDisconnectErrorFormat, orchestration.ErrorDescription(err)))
	}
	return nil
}

// sendDisconnect announces the disconnect and then issues it. The routes are
// disconnected even when the announcement cannot be written.
func (r *run) sendDisconnect(ctx context.Context, endpoints []string) error {
	r.obs.Printf("Executing disconnect routes for reservation %s", r.reservationID)
	if err := r.write(ctx, MsgDisconnecting); err != nil {
		r.obs.Printf("Could not announce route disconnect for reservation %s: %v", r.reservationID, err)
	}
	return r.api.DisconnectRoutesInReservation(ctx, r.reservationID, endpoints)
}
