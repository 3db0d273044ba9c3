package orchestration

// ConnectorState is the connection state of a route between two endpoints.
type ConnectorState string

const (
	ConnectorConnected          ConnectorState = "Connected"
	ConnectorPartiallyConnected ConnectorState = "PartiallyConnected"
	ConnectorDisconnected       ConnectorState = "Disconnected"
	ConnectorConnectionFailed   ConnectorState = "ConnectionFailed"
)

// IsActive reports whether the connector still carries traffic and has to be
// disconnected during teardown.
func (s ConnectorState) IsActive() bool {
	return s == ConnectorConnected || s == ConnectorPartiallyConnected
}

// Connector is a logical network link between two endpoints of a reservation.
type Connector struct {
	Source string         `json:"source,omitempty"`
	Target string         `json:"target,omitempty"`
	State  ConnectorState `json:"state"`
	Alias  string         `json:"alias,omitempty"`
}

// ReservedResource is a resource as listed in the reservation description.
type ReservedResource struct {
	Name                 string `json:"name"`
	FullAddress          string `json:"fullAddress,omitempty"`
	ResourceModelName    string `json:"resourceModelName,omitempty"`
	CreatedInReservation string `json:"createdInReservation,omitempty"`
	CreatedByUser        string `json:"createdByUser,omitempty"`
}

// ReservationDescription is the body of a reservation details response.
type ReservationDescription struct {
	ID         string             `json:"id"`
	Name       string             `json:"name,omitempty"`
	Owner      string             `json:"owner,omitempty"`
	Status     string             `json:"status,omitempty"`
	Connectors []Connector        `json:"connectors"`
	Resources  []ReservedResource `json:"resources"`
}

// ReservationDetails wraps the description the way the API returns it.
type ReservationDetails struct {
	ReservationDescription ReservationDescription `json:"reservationDescription"`
}

// CustomParam is a named string value attached to a deployed VM.
type CustomParam struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VMDetails describes the virtual machine backing a deployed resource.
type VMDetails struct {
	UID                   string        `json:"uid"`
	CloudProviderFullName string        `json:"cloudProviderFullName,omitempty"`
	VMCustomParams        []CustomParam `json:"vmCustomParams,omitempty"`
}

// ResourceInfo is the detail record of a single resource.
type ResourceInfo struct {
	Name              string     `json:"name"`
	FullAddress       string     `json:"fullAddress,omitempty"`
	ResourceModelName string     `json:"resourceModelName,omitempty"`
	VMDetails         *VMDetails `json:"vmDetails,omitempty"`
}

// IsDeployed reports whether the resource is backed by a deployed VM.
func (r *ResourceInfo) IsDeployed() bool {
	return r != nil && r.VMDetails != nil
}
