package orchestration

import "context"

// MockClient is a mock implementation of API.
// Unset functions succeed and return zero values.
type MockClient struct {
	GetReservationDetailsFunc           func(ctx context.Context, reservationID string) (*ReservationDetails, error)
	WriteMessageToReservationOutputFunc func(ctx context.Context, reservationID, message string) error
	DisconnectRoutesInReservationFunc   func(ctx context.Context, reservationID string, endpoints []string) error
	GetResourceDetailsFunc              func(ctx context.Context, resourceName string) (*ResourceInfo, error)
	ExecuteResourceConnectedCommandFunc func(ctx context.Context, reservationID, resourceName, commandName, commandTag string) error
	RemoveResourcesFromReservationFunc  func(ctx context.Context, reservationID string, resourceNames []string) error
	CleanupSandboxConnectivityFunc      func(ctx context.Context, reservationID string) error
}

func (m *MockClient) GetReservationDetails(ctx context.Context, reservationID string) (*ReservationDetails, error) {
	if m.GetReservationDetailsFunc != nil {
		return m.GetReservationDetailsFunc(ctx, reservationID)
	}
	return &ReservationDetails{ReservationDescription: ReservationDescription{ID: reservationID}}, nil
}

func (m *MockClient) WriteMessageToReservationOutput(ctx context.Context, reservationID, message string) error {
	if m.WriteMessageToReservationOutputFunc != nil {
		return m.WriteMessageToReservationOutputFunc(ctx, reservationID, message)
	}
	return nil
}

func (m *MockClient) DisconnectRoutesInReservation(ctx context.Context, reservationID string, endpoints []string) error {
	if m.DisconnectRoutesInReservationFunc != nil {
		return m.DisconnectRoutesInReservationFunc(ctx, reservationID, endpoints)
	}
	return nil
}

func (m *MockClient) GetResourceDetails(ctx context.Context, resourceName string) (*ResourceInfo, error) {
	if m.GetResourceDetailsFunc != nil {
		return m.GetResourceDetailsFunc(ctx, resourceName)
	}
	return &ResourceInfo{Name: resourceName}, nil
}

func (m *MockClient) ExecuteResourceConnectedCommand(ctx context.Context, reservationID, resourceName, commandName, commandTag string) error {
	if m.ExecuteResourceConnectedCommandFunc != nil {
		return m.ExecuteResourceConnectedCommandFunc(ctx, reservationID, resourceName, commandName, commandTag)
	}
	return nil
}

func (m *MockClient) RemoveResourcesFromReservation(ctx context.Context, reservationID string, resourceNames []string) error {
	if m.RemoveResourcesFromReservationFunc != nil {
		return m.RemoveResourcesFromReservationFunc(ctx, reservationID, resourceNames)
	}
	return nil
}

func (m *MockClient) CleanupSandboxConnectivity(ctx context.Context, reservationID string) error {
	if m.CleanupSandboxConnectivityFunc != nil {
		return m.CleanupSandboxConnectivityFunc(ctx, reservationID)
	}
	return nil
}

var _ API = (*MockClient)(nil)
