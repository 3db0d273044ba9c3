package teardown

import (
	"context"
	"fmt"
	"sync"

	"github.com/imamik/sandbox-teardown/internal/platform/orchestration"
)

type connectedCommand struct {
	Resource string
	Name     string
	Tag      string
}

// fakeAPI is a thread-safe orchestration.API that records every call.
type fakeAPI struct {
	orchestration.MockClient

	details   *orchestration.ReservationDetails
	resources map[string]*orchestration.ResourceInfo

	detailsErr      error
	writeErr        error
	messageErr      map[string]error
	disconnectErr   error
	resourceErr     map[string]error
	powerOffErr     map[string]error
	removeErr       error
	connectivityErr error

	mu           sync.Mutex
	calls        []string
	messages     []string
	disconnected [][]string
	commands     []connectedCommand
	removed      [][]string
}

func newFakeAPI(reservationID string) *fakeAPI {
	f := &fakeAPI{
		details: &orchestration.ReservationDetails{
			ReservationDescription: orchestration.ReservationDescription{ID: reservationID},
		},
		resources:   map[string]*orchestration.ResourceInfo{},
		messageErr:  map[string]error{},
		resourceErr: map[string]error{},
		powerOffErr: map[string]error{},
	}

	f.GetReservationDetailsFunc = func(context.Context, string) (*orchestration.ReservationDetails, error) {
		f.record("GetReservationDetails")
		if f.detailsErr != nil {
			return nil, f.detailsErr
		}
		return f.details, nil
	}
	f.WriteMessageToReservationOutputFunc = func(_ context.Context, _ string, message string) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls = append(f.calls, "WriteMessageToReservationOutput")
		f.messages = append(f.messages, message)
		if err := f.messageErr[message]; err != nil {
			return err
		}
		return f.writeErr
	}
	f.DisconnectRoutesInReservationFunc = func(_ context.Context, _ string, endpoints []string) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls = append(f.calls, "DisconnectRoutesInReservation")
		f.disconnected = append(f.disconnected, endpoints)
		return f.disconnectErr
	}
	f.GetResourceDetailsFunc = func(_ context.Context, name string) (*orchestration.ResourceInfo, error) {
		f.record("GetResourceDetails")
		if err := f.resourceErr[name]; err != nil {
			return nil, err
		}
		if info, ok := f.resources[name]; ok {
			return info, nil
		}
		return &orchestration.ResourceInfo{Name: name}, nil
	}
	f.ExecuteResourceConnectedCommandFunc = func(_ context.Context, _ string, resource, name, tag string) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls = append(f.calls, "ExecuteResourceConnectedCommand")
		f.commands = append(f.commands, connectedCommand{Resource: resource, Name: name, Tag: tag})
		return f.powerOffErr[resource]
	}
	f.RemoveResourcesFromReservationFunc = func(_ context.Context, _ string, names []string) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls = append(f.calls, "RemoveResourcesFromReservation")
		f.removed = append(f.removed, names)
		return f.removeErr
	}
	f.CleanupSandboxConnectivityFunc = func(context.Context, string) error {
		f.record("CleanupSandboxConnectivity")
		return f.connectivityErr
	}
	return f
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

// addResource adds a resource created in the reservation. A nil info adds
// a resource without a deployment.
func (f *fakeAPI) addResource(name string, info *orchestration.ResourceInfo) {
	desc := &f.details.ReservationDescription
	desc.Resources = append(desc.Resources, orchestration.ReservedResource{
		Name:                 name,
		CreatedInReservation: desc.ID,
	})
	if info != nil {
		f.resources[name] = info
	}
}

// addApps adds n deployed apps named <prefix>-<i> carrying params.
func (f *fakeAPI) addApps(prefix string, n int, params ...orchestration.CustomParam) []string {
	names := make([]string, 0, n)
	for i := range n {
		name := fmt.Sprintf("%s-%d", prefix, i)
		f.addResource(name, deployedApp(name, params...))
		names = append(names, name)
	}
	return names
}

func (f *fakeAPI) addConnector(source, target string, state orchestration.ConnectorState) {
	desc := &f.details.ReservationDescription
	desc.Connectors = append(desc.Connectors, orchestration.Connector{Source: source, Target: target, State: state})
}

func (f *fakeAPI) snapshotMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func (f *fakeAPI) countMessages(message string) int {
	n := 0
	for _, m := range f.snapshotMessages() {
		if m == message {
			n++
		}
	}
	return n
}

func (f *fakeAPI) countCalls(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func deployedApp(name string, params ...orchestration.CustomParam) *orchestration.ResourceInfo {
	return &orchestration.ResourceInfo{
		Name:      name,
		VMDetails: &orchestration.VMDetails{UID: "vm-" + name, VMCustomParams: params},
	}
}

func param(name, value string) orchestration.CustomParam {
	return orchestration.CustomParam{Name: name, Value: value}
}

// recordingObserver records logs and events. Copies made by WithFields share
// the same records.
type recordingObserver struct {
	mu      sync.Mutex
	printed []string
	events  []Event
}

func (o *recordingObserver) Printf(format string, v ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.printed = append(o.printed, fmt.Sprintf(format, v...))
}

func (o *recordingObserver) Event(event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) WithFields(map[string]string) Observer {
	return o
}

func (o *recordingObserver) errorEvents() []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Event
	for _, e := range o.events {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

func (o *recordingObserver) eventsOfType(t EventType) []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Event
	for _, e := range o.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (o *recordingObserver) printedLines() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.printed...)
}
