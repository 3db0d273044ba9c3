package orchestration

import "context"

// ReservationReader reads reservation state.
type ReservationReader interface {
	GetReservationDetails(ctx context.Context, reservationID string) (*ReservationDetails, error)
}

// OutputWriter writes user-visible lines to a reservation's output stream.
type OutputWriter interface {
	WriteMessageToReservationOutput(ctx context.Context, reservationID, message string) error
}

// RouteManager manages routes between reservation endpoints.
type RouteManager interface {
	// DisconnectRoutesInReservation disconnects the routes that join the given
	// endpoints. Endpoints are passed as a flat list of pairs.
	DisconnectRoutesInReservation(ctx context.Context, reservationID string, endpoints []string) error
}

// ResourceManager manages the resources of a reservation.
type ResourceManager interface {
	GetResourceDetails(ctx context.Context, resourceName string) (*ResourceInfo, error)
	// ExecuteResourceConnectedCommand runs a command on the resource through
	// the cloud provider it is connected to (e.g. "PowerOff").
	ExecuteResourceConnectedCommand(ctx context.Context, reservationID, resourceName, commandName, commandTag string) error
	// RemoveResourcesFromReservation removes the named resources in bulk. For
	// deployed resources the server also destroys the backing VM.
	RemoveResourcesFromReservation(ctx context.Context, reservationID string, resourceNames []string) error
}

// ConnectivityManager releases reservation-level connectivity.
type ConnectivityManager interface {
	CleanupSandboxConnectivity(ctx context.Context, reservationID string) error
}

// API combines every operation teardown needs.
type API interface {
	ReservationReader
	OutputWriter
	RouteManager
	ResourceManager
	ConnectivityManager
}
